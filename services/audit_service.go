package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tutorslink/api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes the append-only audit trail. Entries are recorded
// best-effort through the dispatcher after the primary write succeeds.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditEntry captures one state-changing action and its request
// metadata.
type AuditEntry struct {
	ActorID    uint
	Action     string
	EntityType string
	EntityID   uint
	Changes    interface{}
	RequestID  string
	IPAddress  string
	UserAgent  string
}

// Record appends one audit entry. Rows expire after the retention
// window and are purged by the cron job.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	row := &model.AuditLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		RequestID:  entry.RequestID,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		ExpiresAt:  time.Now().Add(model.AuditRetention),
	}

	if entry.Changes != nil {
		payload, err := json.Marshal(entry.Changes)
		if err != nil {
			return fmt.Errorf("failed to marshal audit changes: %w", err)
		}
		row.Changes = datatypes.JSON(payload)
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// List retrieves audit entries newest first, optionally filtered by
// action and entity type.
func (s *AuditService) List(ctx context.Context, action, entityType string, limit, offset int) ([]model.AuditLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 100
	}

	var logs []model.AuditLog
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

// PurgeExpired deletes audit entries past their retention window.
func (s *AuditService) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}

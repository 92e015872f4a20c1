package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorslink/api/model"
	"gorm.io/gorm"
)

// NotificationService handles in-app user notifications.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify creates an in-app notification for a user. Rows expire after
// the retention window and are purged by the cron job.
func (s *NotificationService) Notify(ctx context.Context, userID uint, typ model.NotificationType, title, message string) error {
	notification := &model.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		ExpiresAt: time.Now().Add(model.NotificationRetention),
	}

	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// NotifyRole creates the same notification for every user holding one
// of the given roles; used for staff fan-out.
func (s *NotificationService) NotifyRole(ctx context.Context, roles []model.Role, typ model.NotificationType, title, message string) error {
	var users []model.User
	if err := s.db.WithContext(ctx).Where("role IN ?", roles).Find(&users).Error; err != nil {
		return fmt.Errorf("failed to load role members: %w", err)
	}

	for _, user := range users {
		if err := s.Notify(ctx, user.ID, typ, title, message); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

// MarkRead flips the read state of one notification, scoped to its
// owner so users cannot touch each other's rows.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PurgeExpired deletes notifications past their retention window.
func (s *NotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

package services

import (
	"context"
	"strconv"

	"github.com/tutorslink/api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService reads and upserts platform-wide key-value settings.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// List returns all settings.
func (s *SettingsService) List(ctx context.Context) ([]model.PlatformSetting, error) {
	var settings []model.PlatformSetting
	err := s.db.WithContext(ctx).Order("key").Find(&settings).Error
	return settings, err
}

// Get returns one setting by key.
func (s *SettingsService) Get(ctx context.Context, key string) (*model.PlatformSetting, error) {
	var setting model.PlatformSetting
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates or replaces a setting, recording the editor.
func (s *SettingsService) Upsert(ctx context.Context, key, value, description string, editorID uint) (*model.PlatformSetting, error) {
	setting := model.PlatformSetting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedByID: editorID,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_by_id", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, key)
}

// CommissionRate returns the current platform commission rate, falling
// back to the default when the setting is absent or unparsable. The
// returned value is captured into new enrollments and is immutable
// there afterwards.
func (s *SettingsService) CommissionRate(ctx context.Context) float64 {
	setting, err := s.Get(ctx, model.SettingCommissionRate)
	if err != nil {
		return model.DefaultCommissionRate
	}

	rate, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || rate < 0 || rate > 1 {
		return model.DefaultCommissionRate
	}
	return rate
}

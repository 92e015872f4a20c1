package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/model"
	"gorm.io/gorm"
)

func TestCommissionRateDefaultsWhenAbsent(t *testing.T) {
	db := newTestDB(t, &model.PlatformSetting{})
	service := NewSettingsService(db)

	assert.InDelta(t, model.DefaultCommissionRate, service.CommissionRate(context.Background()), 1e-9)
}

func TestCommissionRateReadsStoredValue(t *testing.T) {
	db := newTestDB(t, &model.PlatformSetting{})
	service := NewSettingsService(db)

	require.NoError(t, db.Create(&model.PlatformSetting{
		Key:   model.SettingCommissionRate,
		Value: "0.25",
	}).Error)

	assert.InDelta(t, 0.25, service.CommissionRate(context.Background()), 1e-9)
}

func TestCommissionRateRejectsBadValues(t *testing.T) {
	db := newTestDB(t, &model.PlatformSetting{})
	service := NewSettingsService(db)

	for _, value := range []string{"not-a-number", "-0.1", "1.5"} {
		require.NoError(t, db.Where("key = ?", model.SettingCommissionRate).
			Delete(&model.PlatformSetting{}).Error)
		require.NoError(t, db.Create(&model.PlatformSetting{
			Key:   model.SettingCommissionRate,
			Value: value,
		}).Error)

		assert.InDelta(t, model.DefaultCommissionRate,
			service.CommissionRate(context.Background()), 1e-9, "value %q", value)
	}
}

func TestSettingsGetMissingKey(t *testing.T) {
	db := newTestDB(t, &model.PlatformSetting{})
	service := NewSettingsService(db)

	_, err := service.Get(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

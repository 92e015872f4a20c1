package model

import (
	"time"
)

// SettingCommissionRate is the settings key holding the platform-wide
// commission rate applied to new enrollments.
const SettingCommissionRate = "commissionRate"

// DefaultCommissionRate applies when the commissionRate setting is
// absent or unparsable.
const DefaultCommissionRate = 0.15

// PlatformSetting is a key-value configuration row upserted by admins.
// Workflows read settings at the moment they need them; values captured
// into entities (enrollment commission) are immutable afterwards.
type PlatformSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"type:text" json:"description"`
	UpdatedByID uint      `json:"updated_by_id"`
}

// TableName specifies the table name for PlatformSetting.
func (PlatformSetting) TableName() string {
	return "platform_settings"
}

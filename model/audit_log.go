package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditRetention is how long audit entries are kept before the
// retention job purges them.
const AuditRetention = 90 * 24 * time.Hour

// AuditLog is an append-only record of a state-changing action. Entries
// are written best-effort after the primary write and are never
// mutated.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	ActorID    uint           `gorm:"not null;index" json:"actor_id"`
	Action     string         `gorm:"type:varchar(100);not null" json:"action"` // e.g. "enrollment_create"
	EntityType string         `gorm:"type:varchar(50);not null" json:"entity_type"`
	EntityID   uint           `gorm:"index" json:"entity_id"`
	Changes    datatypes.JSON `gorm:"type:jsonb" json:"changes,omitempty"`
	RequestID  string         `gorm:"type:varchar(36)" json:"request_id,omitempty"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent  string         `gorm:"type:text" json:"user_agent,omitempty"`
	ExpiresAt  time.Time      `gorm:"index;not null" json:"expires_at"`

	Actor User `gorm:"foreignKey:ActorID" json:"-"`
}

// TableName specifies the table name for AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}

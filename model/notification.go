package model

import (
	"time"
)

// NotificationType categorizes an in-app notification by the domain
// event that produced it.
type NotificationType string

const (
	NotificationBooking    NotificationType = "booking"
	NotificationEnrollment NotificationType = "enrollment"
	NotificationSession    NotificationType = "session"
	NotificationPayment    NotificationType = "payment"
	NotificationReview     NotificationType = "review"
	NotificationSystem     NotificationType = "system"
	NotificationChat       NotificationType = "chat"
)

// NotificationRetention is how long a notification is kept before the
// retention job purges it.
const NotificationRetention = 30 * 24 * time.Hour

// Notification is an in-app message addressed to one user. It is
// created by workflows as a best-effort side effect and mutated only to
// flip its read state.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Read      bool             `gorm:"default:false" json:"read"`
	ExpiresAt time.Time        `gorm:"index;not null" json:"expires_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

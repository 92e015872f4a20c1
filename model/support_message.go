package model

import (
	"time"
)

// SupportMessage is a one-shot contact-form submission. Unlike chat
// conversations there is no thread; staff follow up over email.
type SupportMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
}

package model

import (
	"time"
)

// BookingStatus is the lifecycle state of a demo-class booking request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known booking state.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a demo-class request submitted from the public listing
// page. It predates enrollment and carries the prospect's contact info
// directly since the requester may not have an account yet.
type Booking struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	StudentName  string        `gorm:"type:varchar(255);not null" json:"student_name"`
	StudentEmail string        `gorm:"type:varchar(255);not null" json:"student_email"`
	TutorID      uint          `gorm:"not null;index" json:"tutor_id"`
	Message      string        `gorm:"type:text" json:"message"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Tutor User `gorm:"foreignKey:TutorID" json:"-"`
}

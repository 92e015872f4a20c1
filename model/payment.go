package model

import (
	"time"
)

// PaymentStatus is the settlement state of a monthly payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Payment records one monthly charge against an enrollment. The
// commission amount is computed from the enrollment's captured
// commission rate, not from the current platform setting.
type Payment struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	EnrollmentID     uint          `gorm:"not null;index" json:"enrollment_id"`
	StudentID        uint          `gorm:"not null;index" json:"student_id"`
	TutorID          uint          `gorm:"not null;index" json:"tutor_id"`
	Amount           float64       `gorm:"not null" json:"amount"`
	CommissionAmount float64       `gorm:"not null" json:"commission_amount"`
	PeriodMonth      string        `gorm:"type:varchar(7);not null" json:"period_month"` // YYYY-MM
	Status           PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
}

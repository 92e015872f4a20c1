package model

import (
	"time"
)

// ApplicationStatus is the tutor-application lifecycle state. Pending
// moves to approved or rejected once; both are terminal and there is no
// withdrawal or resubmission path.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known application state.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// TutorApplication is a standalone intake form submitted by a
// prospective tutor. Status changes are staff/admin actions and each
// transition fans out an applicant notification.
type TutorApplication struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	FullName       string            `gorm:"type:varchar(255);not null" json:"full_name"`
	Email          string            `gorm:"type:varchar(255);not null;index" json:"email"`
	Subjects       string            `gorm:"type:text;not null" json:"subjects"`
	Experience     string            `gorm:"type:text;not null" json:"experience"`
	Qualifications string            `gorm:"type:text;not null" json:"qualifications"`
	AgreeToTerms   bool              `gorm:"not null" json:"agree_to_terms"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

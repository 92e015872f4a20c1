package model

import (
	"time"
)

// EnrollmentStatus is the lifecycle state of a monthly enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentPaused    EnrollmentStatus = "paused"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// ValidEnrollmentStatus reports whether s is a known enrollment state.
func ValidEnrollmentStatus(s EnrollmentStatus) bool {
	switch s {
	case EnrollmentActive, EnrollmentPaused, EnrollmentCancelled, EnrollmentCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s EnrollmentStatus) Terminal() bool {
	return s == EnrollmentCancelled || s == EnrollmentCompleted
}

// Enrollment is a monthly subscription between one student and one
// tutor. CommissionRate is captured from platform settings at creation
// time and is immutable afterwards; later changes to the platform-wide
// rate never affect existing enrollments.
//
// The partial unique index on (student_id, tutor_id) for active rows
// enforces at most one active enrollment per pair even under concurrent
// create attempts.
type Enrollment struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	StudentID      uint             `gorm:"not null;index;uniqueIndex:idx_active_enrollment,where:status = 'active'" json:"student_id"`
	TutorID        uint             `gorm:"not null;index;uniqueIndex:idx_active_enrollment,where:status = 'active'" json:"tutor_id"`
	MonthlyRate    float64          `gorm:"not null" json:"monthly_rate"`
	CommissionRate float64          `gorm:"not null" json:"commission_rate"`
	ClassesPerWeek int              `gorm:"default:1" json:"classes_per_week"`
	ClassDuration  int              `gorm:"default:60" json:"class_duration"` // minutes
	Status         EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	Student User `gorm:"foreignKey:StudentID" json:"-"`
	Tutor   User `gorm:"foreignKey:TutorID" json:"-"`
}

// EnrollmentResponse is the API shape for an enrollment.
type EnrollmentResponse struct {
	ID             uint             `json:"id"`
	StudentID      uint             `json:"student_id"`
	TutorID        uint             `json:"tutor_id"`
	MonthlyRate    float64          `json:"monthly_rate"`
	CommissionRate float64          `json:"commission_rate"`
	ClassesPerWeek int              `json:"classes_per_week"`
	ClassDuration  int              `json:"class_duration"`
	Status         EnrollmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToResponse converts an Enrollment to its API shape.
func (e *Enrollment) ToResponse() EnrollmentResponse {
	return EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		TutorID:        e.TutorID,
		MonthlyRate:    e.MonthlyRate,
		CommissionRate: e.CommissionRate,
		ClassesPerWeek: e.ClassesPerWeek,
		ClassDuration:  e.ClassDuration,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

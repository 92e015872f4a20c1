package model

import (
	"time"
)

// SessionStatus is the scheduling state of a class session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// AttendanceMark is one party's self-reported attendance for a session.
// MarkUnset means the party has not reported yet and is never accepted
// as an input mark.
type AttendanceMark string

const (
	MarkUnset     AttendanceMark = "unset"
	MarkPresent   AttendanceMark = "present"
	MarkLate      AttendanceMark = "late"
	MarkAbsent    AttendanceMark = "absent"
	MarkPostponed AttendanceMark = "postponed"
)

// ValidAttendanceMark reports whether m is an acceptable input mark.
func ValidAttendanceMark(m AttendanceMark) bool {
	switch m {
	case MarkPresent, MarkLate, MarkAbsent, MarkPostponed:
		return true
	}
	return false
}

// ResolveFinalMark derives the authoritative attendance mark from the
// two self-reports. Until both parties have reported the final mark
// stays unset. When the reports agree that value wins; when they
// disagree the tutor's report wins.
func ResolveFinalMark(studentMark, tutorMark AttendanceMark) AttendanceMark {
	if studentMark == MarkUnset || studentMark == "" || tutorMark == MarkUnset || tutorMark == "" {
		return MarkUnset
	}
	if studentMark == tutorMark {
		return studentMark
	}
	return tutorMark
}

// Session is a single scheduled class belonging to one enrollment.
// StudentMark and TutorMark are overwritten in place on re-report (last
// write per party wins, no history); FinalMark is always derived via
// ResolveFinalMark and never set directly.
type Session struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	EnrollmentID    uint           `gorm:"not null;index" json:"enrollment_id"`
	ScheduledAt     time.Time      `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int            `gorm:"default:60" json:"duration_minutes"`
	Status          SessionStatus  `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	StudentMark     AttendanceMark `gorm:"type:varchar(12);not null;default:'unset'" json:"student_mark"`
	StudentMarkedAt *time.Time     `json:"student_marked_at,omitempty"`
	TutorMark       AttendanceMark `gorm:"type:varchar(12);not null;default:'unset'" json:"tutor_mark"`
	TutorMarkedAt   *time.Time     `json:"tutor_marked_at,omitempty"`
	FinalMark       AttendanceMark `gorm:"type:varchar(12);not null;default:'unset'" json:"final_mark"`

	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// SessionResponse is the API shape for a session.
type SessionResponse struct {
	ID              uint           `json:"id"`
	EnrollmentID    uint           `json:"enrollment_id"`
	ScheduledAt     time.Time      `json:"scheduled_at"`
	DurationMinutes int            `json:"duration_minutes"`
	Status          SessionStatus  `json:"status"`
	StudentMark     AttendanceMark `json:"student_mark"`
	StudentMarkedAt *time.Time     `json:"student_marked_at,omitempty"`
	TutorMark       AttendanceMark `json:"tutor_mark"`
	TutorMarkedAt   *time.Time     `json:"tutor_marked_at,omitempty"`
	FinalMark       AttendanceMark `json:"final_mark"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ToResponse converts a Session to its API shape.
func (s *Session) ToResponse() SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		EnrollmentID:    s.EnrollmentID,
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: s.DurationMinutes,
		Status:          s.Status,
		StudentMark:     s.StudentMark,
		StudentMarkedAt: s.StudentMarkedAt,
		TutorMark:       s.TutorMark,
		TutorMarkedAt:   s.TutorMarkedAt,
		FinalMark:       s.FinalMark,
		CreatedAt:       s.CreatedAt,
	}
}

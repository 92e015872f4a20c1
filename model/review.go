package model

import (
	"time"
)

// Review is a student's rating of a tutor, tied to the enrollment that
// entitles the student to review. Rating and comment are immutable once
// created; only visibility, flag and moderation notes change, and only
// through admin moderation.
type Review struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	StudentID       uint      `gorm:"not null;index;uniqueIndex:idx_review_triple" json:"student_id"`
	TutorID         uint      `gorm:"not null;index;uniqueIndex:idx_review_triple" json:"tutor_id"`
	EnrollmentID    uint      `gorm:"not null;uniqueIndex:idx_review_triple" json:"enrollment_id"`
	Rating          int       `gorm:"not null" json:"rating"` // 1..5
	Title           string    `gorm:"type:varchar(255)" json:"title"`
	Comment         string    `gorm:"type:text" json:"comment"`
	IsVisible       bool      `gorm:"default:true" json:"is_visible"`
	IsFlagged       bool      `gorm:"default:false" json:"is_flagged"`
	ModerationNotes string    `gorm:"type:text" json:"moderation_notes,omitempty"`

	Student    User       `gorm:"foreignKey:StudentID" json:"-"`
	Tutor      User       `gorm:"foreignKey:TutorID" json:"-"`
	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
}

// ValidRating reports whether r is an acceptable review rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// AggregateRatings computes the arithmetic mean and count over a set of
// review ratings. It is always run over the full currently-visible set
// for a tutor so that moderation changes are reflected exactly, rather
// than drifting an incremental running average.
func AggregateRatings(ratings []int) (average float64, count int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings)), len(ratings)
}

// ReviewResponse is the API shape for a review.
type ReviewResponse struct {
	ID           uint      `json:"id"`
	StudentID    uint      `json:"student_id"`
	StudentName  string    `json:"student_name,omitempty"`
	TutorID      uint      `json:"tutor_id"`
	EnrollmentID uint      `json:"enrollment_id"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	IsVisible    bool      `json:"is_visible"`
	IsFlagged    bool      `json:"is_flagged"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts a Review to its API shape.
func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		StudentID:    r.StudentID,
		TutorID:      r.TutorID,
		EnrollmentID: r.EnrollmentID,
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		IsVisible:    r.IsVisible,
		IsFlagged:    r.IsFlagged,
		CreatedAt:    r.CreatedAt,
	}
}

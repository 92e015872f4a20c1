package model

import (
	"time"
)

// TutorCategory is the category a tutor teaches in, matching the
// categories offered on the platform listing page.
type TutorCategory string

const (
	CategoryIGCSE    TutorCategory = "IGCSE"
	CategoryALevels  TutorCategory = "AS/A Levels"
	CategoryUni      TutorCategory = "University"
	CategoryTestPrep TutorCategory = "Test Preparation"
	CategoryOther    TutorCategory = "Other"
)

// ValidTutorCategory reports whether c is a known listing category.
func ValidTutorCategory(c TutorCategory) bool {
	switch c {
	case CategoryIGCSE, CategoryALevels, CategoryUni, CategoryTestPrep, CategoryOther:
		return true
	}
	return false
}

// TutorProfile is the one-to-one extension of a User with role tutor.
// RatingAverage and RatingCount are written only by the review
// aggregation workflow, never by profile updates.
type TutorProfile struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	UserID         uint          `gorm:"uniqueIndex;not null" json:"user_id"`
	Subjects       string        `gorm:"type:text;not null" json:"subjects"`
	Price          string        `gorm:"type:varchar(100);not null" json:"price"`
	Timezone       string        `gorm:"type:varchar(64)" json:"timezone"`
	Languages      string        `gorm:"type:varchar(255)" json:"languages"`
	Category       TutorCategory `gorm:"type:varchar(30);not null" json:"category"`
	Availability   string        `gorm:"type:varchar(100);default:'Available'" json:"availability"`
	Qualifications string        `gorm:"type:text" json:"qualifications"`
	RatingAverage  float64       `gorm:"default:0" json:"rating_average"`
	RatingCount    int           `gorm:"default:0" json:"rating_count"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for TutorProfile.
func (TutorProfile) TableName() string {
	return "tutor_profiles"
}

// TutorResponse is the public API shape for a tutor listing.
type TutorResponse struct {
	ID             uint          `json:"id"`
	UserID         uint          `json:"user_id"`
	Name           string        `json:"name"`
	Subjects       string        `json:"subjects"`
	Price          string        `json:"price"`
	Timezone       string        `json:"timezone,omitempty"`
	Languages      string        `json:"languages,omitempty"`
	Category       TutorCategory `json:"category"`
	Availability   string        `json:"availability"`
	Qualifications string        `json:"qualifications,omitempty"`
	RatingAverage  float64       `json:"rating_average"`
	RatingCount    int           `json:"rating_count"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ToResponse converts a TutorProfile plus its owner's display name to
// the public listing shape.
func (t *TutorProfile) ToResponse(name string) TutorResponse {
	return TutorResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		Name:           name,
		Subjects:       t.Subjects,
		Price:          t.Price,
		Timezone:       t.Timezone,
		Languages:      t.Languages,
		Category:       t.Category,
		Availability:   t.Availability,
		Qualifications: t.Qualifications,
		RatingAverage:  t.RatingAverage,
		RatingCount:    t.RatingCount,
		CreatedAt:      t.CreatedAt,
	}
}

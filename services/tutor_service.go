package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorslink/api/model"
	"gorm.io/gorm"
)

// TutorService manages tutor profiles and the public tutor listing.
type TutorService struct {
	db *gorm.DB
}

// NewTutorService creates a new tutor service
func NewTutorService(db *gorm.DB) *TutorService {
	return &TutorService{db: db}
}

// TutorProfileInput is the editable part of a tutor profile.
type TutorProfileInput struct {
	Subjects       string              `json:"subjects" validate:"required"`
	Price          string              `json:"price" validate:"required"`
	Timezone       string              `json:"timezone"`
	Languages      string              `json:"languages"`
	Category       model.TutorCategory `json:"category" validate:"required"`
	Availability   string              `json:"availability"`
	Qualifications string              `json:"qualifications"`
}

// List returns profiles joined with their owners' names, newest first.
func (s *TutorService) List(ctx context.Context, category model.TutorCategory) ([]model.TutorResponse, error) {
	query := s.db.WithContext(ctx).Model(&model.TutorProfile{}).Preload("User")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var profiles []model.TutorProfile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	out := make([]model.TutorResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, profiles[i].ToResponse(profiles[i].User.DisplayName))
	}
	return out, nil
}

// GetByUserID returns the profile owned by the given user.
func (s *TutorService) GetByUserID(ctx context.Context, userID uint) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tutor profile not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or updates the profile for a tutor user.
// Rating fields are owned by the review workflow and are not touched.
func (s *TutorService) UpsertProfile(ctx context.Context, user *model.User, input TutorProfileInput) (*model.TutorProfile, error) {
	if !model.ValidTutorCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown tutor category %q", ErrValidation, input.Category)
	}

	availability := input.Availability
	if availability == "" {
		availability = "Available"
	}

	var profile model.TutorProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.TutorProfile{
			UserID:         user.ID,
			Subjects:       input.Subjects,
			Price:          input.Price,
			Timezone:       input.Timezone,
			Languages:      input.Languages,
			Category:       input.Category,
			Availability:   availability,
			Qualifications: input.Qualifications,
		}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create tutor profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"subjects":       input.Subjects,
		"price":          input.Price,
		"timezone":       input.Timezone,
		"languages":      input.Languages,
		"category":       input.Category,
		"availability":   availability,
		"qualifications": input.Qualifications,
	}
	if err := s.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update tutor profile: %w", err)
	}
	return &profile, nil
}

// RosterCreateInput is the legacy staff-portal roster form: staff add a
// tutor directly, creating both the account shell and its profile.
type RosterCreateInput struct {
	Name    string            `json:"name" validate:"required,min=2,max=255"`
	Email   string            `json:"email" validate:"required,email"`
	Profile TutorProfileInput `json:"profile"`
}

// RosterCreate adds a tutor from the staff portal. The account gets a
// synthetic external-identity reference until the tutor first signs in,
// at which point the identity bridge matches by email.
func (s *TutorService) RosterCreate(ctx context.Context, input RosterCreateInput) (*model.TutorProfile, error) {
	if !model.ValidTutorCategory(input.Profile.Category) {
		return nil, fmt.Errorf("%w: unknown tutor category %q", ErrValidation, input.Profile.Category)
	}

	user := model.User{
		FirebaseUID: "roster-" + uuid.NewString(),
		Email:       input.Email,
		DisplayName: input.Name,
		Role:        model.RoleTutor,
	}

	availability := input.Profile.Availability
	if availability == "" {
		availability = "Available"
	}

	profile := model.TutorProfile{
		Subjects:       input.Profile.Subjects,
		Price:          input.Profile.Price,
		Timezone:       input.Profile.Timezone,
		Languages:      input.Profile.Languages,
		Category:       input.Profile.Category,
		Availability:   availability,
		Qualifications: input.Profile.Qualifications,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: a user with this email already exists", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create roster tutor: %w", err)
	}

	profile.User = user
	return &profile, nil
}

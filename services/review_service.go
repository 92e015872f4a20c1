package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// ReviewService implements review submission with its entitlement
// check, and the full-recompute rating aggregation.
type ReviewService struct {
	db            *gorm.DB
	notifications *NotificationService
	audit         *AuditService
	dispatcher    *dispatch.Dispatcher
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, notifications *NotificationService, audit *AuditService, dispatcher *dispatch.Dispatcher) *ReviewService {
	return &ReviewService{
		db:            db,
		notifications: notifications,
		audit:         audit,
		dispatcher:    dispatcher,
	}
}

// CreateReviewInput is the student-provided shape of a review.
type CreateReviewInput struct {
	TutorID      uint   `json:"tutor_id" validate:"required"`
	EnrollmentID uint   `json:"enrollment_id" validate:"required"`
	Rating       int    `json:"rating" validate:"required"`
	Title        string `json:"title" validate:"max=255"`
	Comment      string `json:"comment" validate:"max=4000"`
}

// Create runs the review workflow: rating bounds, entitlement through
// the named enrollment, triple uniqueness, persist, aggregate
// recompute, then fan-out.
func (s *ReviewService) Create(ctx context.Context, student *model.User, input CreateReviewInput, meta AuditMeta) (*model.Review, error) {
	if !model.ValidRating(input.Rating) {
		return nil, fmt.Errorf("%w: rating must be an integer between 1 and 5", ErrValidation)
	}

	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).First(&enrollment, input.EnrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: enrollment not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	// Entitlement: the enrollment must be the student's own and must
	// reference the tutor being reviewed.
	if enrollment.StudentID != student.ID || enrollment.TutorID != input.TutorID {
		return nil, fmt.Errorf("%w: you must have studied with this tutor to review them", ErrForbidden)
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&model.Review{}).
		Where("student_id = ? AND tutor_id = ? AND enrollment_id = ?", student.ID, input.TutorID, input.EnrollmentID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: you already reviewed this enrollment", ErrDuplicate)
	}

	review := &model.Review{
		StudentID:    student.ID,
		TutorID:      input.TutorID,
		EnrollmentID: input.EnrollmentID,
		Rating:       input.Rating,
		Title:        input.Title,
		Comment:      input.Comment,
		IsVisible:    true,
		IsFlagged:    false,
	}

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: you already reviewed this enrollment", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// The aggregate is part of the workflow's observable outcome, so it
	// runs inline rather than on the dispatcher.
	if err := s.RecomputeTutorRating(ctx, input.TutorID); err != nil {
		return nil, err
	}

	tutorID := input.TutorID
	rating := input.Rating
	actorID := student.ID
	reviewID := review.ID

	s.dispatcher.Enqueue(dispatch.Task{
		Name: "review_notify_tutor",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.Notify(taskCtx, tutorID, model.NotificationReview,
				"New review", fmt.Sprintf("You received a %d-star review.", rating))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "review_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "review_create",
				EntityType: "review",
				EntityID:   reviewID,
				Changes:    map[string]interface{}{"tutor_id": tutorID, "rating": rating},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return review, nil
}

// VisibleForTutor returns the currently visible reviews for a tutor,
// newest first. This is the public listing.
func (s *ReviewService) VisibleForTutor(ctx context.Context, tutorID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.WithContext(ctx).
		Where("tutor_id = ? AND is_visible = ?", tutorID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// RecomputeTutorRating recomputes the tutor's aggregate from the full
// currently-visible review set. Full recomputation keeps the aggregate
// exact across moderation hides and unhides.
func (s *ReviewService) RecomputeTutorRating(ctx context.Context, tutorID uint) error {
	var ratings []int
	err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("tutor_id = ? AND is_visible = ?", tutorID, true).
		Pluck("rating", &ratings).Error
	if err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	average, count := model.AggregateRatings(ratings)
	result := s.db.WithContext(ctx).Model(&model.TutorProfile{}).
		Where("user_id = ?", tutorID).
		Updates(map[string]interface{}{
			"rating_average": average,
			"rating_count":   count,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tutor rating: %w", result.Error)
	}

	// A tutor elevated by role change may not have filled in a profile
	// yet; the aggregate still needs somewhere to live.
	if result.RowsAffected == 0 {
		profile := model.TutorProfile{
			UserID:        tutorID,
			Category:      model.CategoryOther,
			RatingAverage: average,
			RatingCount:   count,
		}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create tutor profile for rating: %w", err)
		}
	}
	return nil
}

// ModerateReviewInput carries the admin-editable moderation fields;
// only fields present in the request are touched.
type ModerateReviewInput struct {
	IsVisible *bool   `json:"is_visible"`
	IsFlagged *bool   `json:"is_flagged"`
	Notes     *string `json:"notes"`
}

// Moderate updates only the provided fields. A visibility change
// re-triggers the rating recompute so aggregates never go stale.
func (s *ReviewService) Moderate(ctx context.Context, admin *model.User, reviewID uint, input ModerateReviewInput, meta AuditMeta) (*model.Review, error) {
	var review model.Review
	err := s.db.WithContext(ctx).First(&review, reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: review not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	visibilityChanged := false
	if input.IsVisible != nil && *input.IsVisible != review.IsVisible {
		updates["is_visible"] = *input.IsVisible
		visibilityChanged = true
	}
	if input.IsFlagged != nil {
		updates["is_flagged"] = *input.IsFlagged
	}
	if input.Notes != nil {
		updates["moderation_notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&review).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to moderate review: %w", err)
		}
	}

	if visibilityChanged {
		if err := s.RecomputeTutorRating(ctx, review.TutorID); err != nil {
			return nil, err
		}
	}

	adminID := admin.ID
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "review_moderate_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    adminID,
				Action:     "review_moderate",
				EntityType: "review",
				EntityID:   reviewID,
				Changes:    updates,
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &review, nil
}

// ListForModeration returns reviews for the admin surface, optionally
// only flagged ones.
func (s *ReviewService) ListForModeration(ctx context.Context, flaggedOnly bool, limit, offset int) ([]model.Review, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Review{})
	if flaggedOnly {
		query = query.Where("is_flagged = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}

	var reviews []model.Review
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

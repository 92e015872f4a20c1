package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// EnrollmentService implements the enrollment workflow: duplicate
// checking, commission capture and post-persist fan-out.
type EnrollmentService struct {
	db            *gorm.DB
	settings      *SettingsService
	notifications *NotificationService
	webhook       *WebhookService
	audit         *AuditService
	dispatcher    *dispatch.Dispatcher
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB, settings *SettingsService, notifications *NotificationService, webhook *WebhookService, audit *AuditService, dispatcher *dispatch.Dispatcher) *EnrollmentService {
	return &EnrollmentService{
		db:            db,
		settings:      settings,
		notifications: notifications,
		webhook:       webhook,
		audit:         audit,
		dispatcher:    dispatcher,
	}
}

// CreateEnrollmentInput is the student-provided part of an enrollment.
type CreateEnrollmentInput struct {
	TutorID        uint    `json:"tutor_id" validate:"required"`
	MonthlyRate    float64 `json:"monthly_rate" validate:"required,gt=0"`
	ClassesPerWeek int     `json:"classes_per_week" validate:"gte=0,lte=14"`
	ClassDuration  int     `json:"class_duration" validate:"gte=0,lte=240"`
}

// Create runs the enrollment workflow for a student. The commission
// rate is read from platform settings once and captured immutably into
// the new row. Everything after the persist is fire-and-forget.
func (s *EnrollmentService) Create(ctx context.Context, student *model.User, input CreateEnrollmentInput, meta AuditMeta) (*model.Enrollment, error) {
	var tutor model.User
	err := s.db.WithContext(ctx).Where("id = ? AND role = ?", input.TutorID, model.RoleTutor).First(&tutor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tutor not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	// Application-level check for the common case; the partial unique
	// index is what actually holds the invariant under racing writers.
	var existing int64
	err = s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("student_id = ? AND tutor_id = ? AND status = ?", student.ID, tutor.ID, model.EnrollmentActive).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: you already have an active enrollment with this tutor", ErrDuplicate)
	}

	classesPerWeek := input.ClassesPerWeek
	if classesPerWeek == 0 {
		classesPerWeek = 1
	}
	classDuration := input.ClassDuration
	if classDuration == 0 {
		classDuration = 60
	}

	enrollment := &model.Enrollment{
		StudentID:      student.ID,
		TutorID:        tutor.ID,
		MonthlyRate:    input.MonthlyRate,
		CommissionRate: s.settings.CommissionRate(ctx),
		ClassesPerWeek: classesPerWeek,
		ClassDuration:  classDuration,
		Status:         model.EnrollmentActive,
	}

	if err := s.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: you already have an active enrollment with this tutor", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	studentName := student.DisplayName
	enrollmentID := enrollment.ID
	tutorID := tutor.ID
	actorID := student.ID

	s.dispatcher.Enqueue(dispatch.Task{
		Name: "enrollment_notify_tutor",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.Notify(taskCtx, tutorID, model.NotificationEnrollment,
				"New enrollment", fmt.Sprintf("%s enrolled with you.", studentName))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "enrollment_webhook",
		Fn: func(taskCtx context.Context) error {
			return s.webhook.Send(taskCtx, fmt.Sprintf("📚 New enrollment: student %d with tutor %d", actorID, tutorID))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "enrollment_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "enrollment_create",
				EntityType: "enrollment",
				EntityID:   enrollmentID,
				Changes:    enrollment.ToResponse(),
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return enrollment, nil
}

// ListForUser returns enrollments where the caller is student or tutor.
func (s *EnrollmentService) ListForUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := s.db.WithContext(ctx).
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateStatus transitions an enrollment's lifecycle state. Only the
// enrollment's student or tutor may transition it, terminal states
// reject all further transitions, and pausing is a student action.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, actor *model.User, enrollmentID uint, status model.EnrollmentStatus, meta AuditMeta) (*model.Enrollment, error) {
	if !model.ValidEnrollmentStatus(status) {
		return nil, fmt.Errorf("%w: unknown enrollment status %q", ErrValidation, status)
	}

	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).First(&enrollment, enrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: enrollment not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if actor.ID != enrollment.StudentID && actor.ID != enrollment.TutorID {
		return nil, fmt.Errorf("%w: not your enrollment", ErrForbidden)
	}
	if enrollment.Status.Terminal() {
		return nil, fmt.Errorf("%w: enrollment is already %s", ErrValidation, enrollment.Status)
	}
	if status == model.EnrollmentPaused && actor.ID != enrollment.StudentID {
		return nil, fmt.Errorf("%w: only the student can pause an enrollment", ErrForbidden)
	}

	previous := enrollment.Status
	if err := s.db.WithContext(ctx).Model(&enrollment).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}

	actorID := actor.ID
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "enrollment_status_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "enrollment_status_change",
				EntityType: "enrollment",
				EntityID:   enrollmentID,
				Changes:    map[string]interface{}{"from": previous, "to": status},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &enrollment, nil
}

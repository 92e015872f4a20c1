package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// ApplicationService implements the tutor-application lifecycle:
// validated intake, triple fan-out on creation and status transitions.
type ApplicationService struct {
	db            *gorm.DB
	notifications *NotificationService
	email         *EmailService
	webhook       *WebhookService
	audit         *AuditService
	dispatcher    *dispatch.Dispatcher
}

// NewApplicationService creates a new application service
func NewApplicationService(db *gorm.DB, notifications *NotificationService, email *EmailService, webhook *WebhookService, audit *AuditService, dispatcher *dispatch.Dispatcher) *ApplicationService {
	return &ApplicationService{
		db:            db,
		notifications: notifications,
		email:         email,
		webhook:       webhook,
		audit:         audit,
		dispatcher:    dispatcher,
	}
}

// CreateApplicationInput is the intake form. Every field is required
// and the terms flag must be explicitly true.
type CreateApplicationInput struct {
	FullName       string `json:"full_name" validate:"required,min=2,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Subjects       string `json:"subjects" validate:"required"`
	Experience     string `json:"experience" validate:"required"`
	Qualifications string `json:"qualifications" validate:"required"`
	AgreeToTerms   bool   `json:"agree_to_terms"`
}

// Create persists a pending application and fans out the applicant
// confirmation, staff notification and chat-ops message, each
// independently best-effort.
func (s *ApplicationService) Create(ctx context.Context, input CreateApplicationInput) (*model.TutorApplication, error) {
	if !input.AgreeToTerms {
		return nil, fmt.Errorf("%w: you must agree to the terms to apply", ErrValidation)
	}

	application := &model.TutorApplication{
		FullName:       input.FullName,
		Email:          input.Email,
		Subjects:       input.Subjects,
		Experience:     input.Experience,
		Qualifications: input.Qualifications,
		AgreeToTerms:   true,
		Status:         model.ApplicationPending,
	}

	if err := s.db.WithContext(ctx).Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	email := application.Email
	fullName := application.FullName

	s.dispatcher.Enqueue(dispatch.Task{
		Name: "application_confirm_email",
		Fn: func(taskCtx context.Context) error {
			return s.email.SendApplicationReceived(email, fullName)
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "application_notify_staff",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.NotifyRole(taskCtx,
				[]model.Role{model.RoleStaff, model.RoleAdmin},
				model.NotificationSystem,
				"New tutor application",
				fmt.Sprintf("%s applied to become a tutor.", fullName))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "application_webhook",
		Fn: func(taskCtx context.Context) error {
			return s.webhook.Send(taskCtx, fmt.Sprintf("📝 New tutor application from **%s** (%s)", fullName, email))
		},
	})

	return application, nil
}

// List returns applications for the staff surface, optionally filtered
// by status.
func (s *ApplicationService) List(ctx context.Context, status model.ApplicationStatus) ([]model.TutorApplication, error) {
	query := s.db.WithContext(ctx).Model(&model.TutorApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []model.TutorApplication
	err := query.Order("created_at DESC").Find(&applications).Error
	return applications, err
}

// UpdateStatus transitions an application. Approved and rejected are
// terminal; a decided application admits no further transitions.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *model.User, applicationID uint, status model.ApplicationStatus, meta AuditMeta) (*model.TutorApplication, error) {
	if !model.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: unknown application status %q", ErrValidation, status)
	}

	var application model.TutorApplication
	err := s.db.WithContext(ctx).First(&application, applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: application not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if application.Status != model.ApplicationPending && status != application.Status {
		return nil, fmt.Errorf("%w: application is already %s", ErrValidation, application.Status)
	}

	if err := s.db.WithContext(ctx).Model(&application).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	email := application.Email
	fullName := application.FullName
	actorID := actor.ID

	s.dispatcher.Enqueue(dispatch.Task{
		Name: "application_status_email",
		Fn: func(taskCtx context.Context) error {
			return s.email.SendApplicationStatus(email, fullName, status)
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "application_status_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "application_status_change",
				EntityType: "tutor_application",
				EntityID:   applicationID,
				Changes:    map[string]interface{}{"to": status},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &application, nil
}

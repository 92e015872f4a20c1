package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

var periodMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PaymentService records monthly charges against enrollments. The
// commission amount is always derived from the rate captured on the
// enrollment, never from the current platform setting.
type PaymentService struct {
	db            *gorm.DB
	notifications *NotificationService
	audit         *AuditService
	dispatcher    *dispatch.Dispatcher
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, notifications *NotificationService, audit *AuditService, dispatcher *dispatch.Dispatcher) *PaymentService {
	return &PaymentService{
		db:            db,
		notifications: notifications,
		audit:         audit,
		dispatcher:    dispatcher,
	}
}

// RecordPaymentInput is the admin-provided shape for recording a
// payment.
type RecordPaymentInput struct {
	EnrollmentID uint                `json:"enrollment_id" validate:"required"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	PeriodMonth  string              `json:"period_month" validate:"required"`
	Status       model.PaymentStatus `json:"status"`
}

// Record creates a payment row for an enrollment's billing period.
func (s *PaymentService) Record(ctx context.Context, admin *model.User, input RecordPaymentInput, meta AuditMeta) (*model.Payment, error) {
	if !periodMonthPattern.MatchString(input.PeriodMonth) {
		return nil, fmt.Errorf("%w: period_month must be formatted YYYY-MM", ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = model.PaymentPending
	}
	if !model.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, input.Status)
	}

	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).First(&enrollment, input.EnrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: enrollment not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		EnrollmentID:     enrollment.ID,
		StudentID:        enrollment.StudentID,
		TutorID:          enrollment.TutorID,
		Amount:           input.Amount,
		CommissionAmount: input.Amount * enrollment.CommissionRate,
		PeriodMonth:      input.PeriodMonth,
		Status:           status,
	}

	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	studentID := enrollment.StudentID
	tutorID := enrollment.TutorID
	paymentID := payment.ID
	amount := payment.Amount
	actorID := admin.ID

	s.dispatcher.Enqueue(dispatch.Task{
		Name: "payment_notify_parties",
		Fn: func(taskCtx context.Context) error {
			msg := fmt.Sprintf("A payment of %.2f was recorded for %s.", amount, input.PeriodMonth)
			if err := s.notifications.Notify(taskCtx, studentID, model.NotificationPayment, "Payment recorded", msg); err != nil {
				return err
			}
			return s.notifications.Notify(taskCtx, tutorID, model.NotificationPayment, "Payment recorded", msg)
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "payment_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "payment_record",
				EntityType: "payment",
				EntityID:   paymentID,
				Changes:    payment,
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return payment, nil
}

// ListForUser returns payments where the caller is the student or the
// tutor, newest first.
func (s *PaymentService) ListForUser(ctx context.Context, userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Where("student_id = ? OR tutor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return payments, nil
}

// UpdateStatus moves a payment between settlement states.
func (s *PaymentService) UpdateStatus(ctx context.Context, admin *model.User, paymentID uint, status model.PaymentStatus, meta AuditMeta) (*model.Payment, error) {
	if !model.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, status)
	}

	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: payment not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	payment.Status = status
	if err := s.db.WithContext(ctx).Model(&payment).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	actorID := admin.ID
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "payment_status_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "payment_status_change",
				EntityType: "payment",
				EntityID:   paymentID,
				Changes:    map[string]interface{}{"status": status},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &payment, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// BookingService handles demo-class booking requests from the public
// listing page.
type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
	webhook       *WebhookService
	dispatcher    *dispatch.Dispatcher
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB, notifications *NotificationService, webhook *WebhookService, dispatcher *dispatch.Dispatcher) *BookingService {
	return &BookingService{
		db:            db,
		notifications: notifications,
		webhook:       webhook,
		dispatcher:    dispatcher,
	}
}

// CreateBookingInput is the public booking form shape.
type CreateBookingInput struct {
	StudentName  string `json:"student_name" validate:"required,min=2,max=255"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	TutorID      uint   `json:"tutor_id" validate:"required"`
	Message      string `json:"message" validate:"max=2000"`
}

// Create persists a pending booking after checking the tutor exists,
// then notifies the tutor best-effort.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*model.Booking, error) {
	var tutor model.User
	err := s.db.WithContext(ctx).Where("id = ? AND role = ?", input.TutorID, model.RoleTutor).First(&tutor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tutor not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		StudentName:  input.StudentName,
		StudentEmail: input.StudentEmail,
		TutorID:      tutor.ID,
		Message:      input.Message,
		Status:       model.BookingPending,
	}

	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	tutorID := tutor.ID
	studentName := booking.StudentName
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "booking_notify_tutor",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.Notify(taskCtx, tutorID, model.NotificationBooking,
				"New demo class request", fmt.Sprintf("%s requested a demo class.", studentName))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "booking_webhook",
		Fn: func(taskCtx context.Context) error {
			return s.webhook.Send(taskCtx, fmt.Sprintf("📅 New booking request from **%s** for tutor %d", studentName, tutorID))
		},
	})

	return booking, nil
}

// ListForTutor returns a tutor's booking requests, newest first.
func (s *BookingService) ListForTutor(ctx context.Context, tutorID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// UpdateStatus moves a booking through its lifecycle. Only the booked
// tutor or staff/admin may transition it.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *model.User, bookingID uint, status model.BookingStatus) (*model.Booking, error) {
	if !model.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, status)
	}

	var booking model.Booking
	err := s.db.WithContext(ctx).First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if actor.ID != booking.TutorID && !actor.Role.In(model.RoleStaff, model.RoleAdmin) {
		return nil, fmt.Errorf("%w: not your booking", ErrForbidden)
	}

	if err := s.db.WithContext(ctx).Model(&booking).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return &booking, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// SupportService persists contact-form submissions and relays them to
// the staff Discord channel.
type SupportService struct {
	db         *gorm.DB
	webhook    *WebhookService
	dispatcher *dispatch.Dispatcher
}

// NewSupportService creates a new support service
func NewSupportService(db *gorm.DB, webhook *WebhookService, dispatcher *dispatch.Dispatcher) *SupportService {
	return &SupportService{
		db:         db,
		webhook:    webhook,
		dispatcher: dispatcher,
	}
}

// CreateSupportInput is a contact-form submission.
type CreateSupportInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Create stores the submission and relays it to Discord best-effort.
// The webhook failing never fails the request.
func (s *SupportService) Create(ctx context.Context, input CreateSupportInput) (*model.SupportMessage, error) {
	msg := &model.SupportMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save support message: %w", err)
	}

	name, email, body := input.Name, input.Email, input.Message
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "support_webhook",
		Fn: func(taskCtx context.Context) error {
			return s.webhook.SendSupportMessage(taskCtx, name, email, body)
		},
	})

	return msg, nil
}

// List returns support messages newest first, for the staff inbox.
func (s *SupportService) List(ctx context.Context, limit, offset int) ([]model.SupportMessage, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.SupportMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.SupportMessage
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch support messages: %w", err)
	}
	return messages, total, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// ChatService manages support conversations. Conversations are looked
// up by their opaque public ID since visitors may be unauthenticated.
type ChatService struct {
	db            *gorm.DB
	notifications *NotificationService
	webhook       *WebhookService
	dispatcher    *dispatch.Dispatcher
}

// NewChatService creates a new chat service
func NewChatService(db *gorm.DB, notifications *NotificationService, webhook *WebhookService, dispatcher *dispatch.Dispatcher) *ChatService {
	return &ChatService{
		db:            db,
		notifications: notifications,
		webhook:       webhook,
		dispatcher:    dispatcher,
	}
}

// Start opens a conversation with an initial bot greeting.
func (s *ChatService) Start(ctx context.Context, userName, userEmail string, userID *uint) (*model.ChatConversation, error) {
	conversation := &model.ChatConversation{
		PublicID:  uuid.NewString(),
		UserName:  userName,
		UserEmail: userEmail,
		UserID:    userID,
		Status:    model.ChatOpen,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		greeting := &model.ChatMessage{
			ConversationID: conversation.ID,
			SenderType:     model.SenderBot,
			SenderName:     "Tutors Link Bot",
			Message:        "Hi! How can we help you today?",
		}
		return tx.Create(greeting).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	return conversation, nil
}

// find loads a conversation by public ID.
func (s *ChatService) find(ctx context.Context, publicID string) (*model.ChatConversation, error) {
	var conversation model.ChatConversation
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: conversation not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Append adds a message to an open or escalated conversation. Messages
// are append-only; closed conversations reject new messages.
func (s *ChatService) Append(ctx context.Context, publicID string, senderType model.ChatSender, senderName, message string) (*model.ChatMessage, error) {
	if !model.ValidChatSender(senderType) {
		return nil, fmt.Errorf("%w: unknown sender type %q", ErrValidation, senderType)
	}

	conversation, err := s.find(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if conversation.Status == model.ChatClosed {
		return nil, fmt.Errorf("%w: conversation is closed", ErrValidation)
	}

	chatMessage := &model.ChatMessage{
		ConversationID: conversation.ID,
		SenderType:     senderType,
		SenderName:     senderName,
		Message:        message,
	}

	if err := s.db.WithContext(ctx).Create(chatMessage).Error; err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	return chatMessage, nil
}

// Messages returns a conversation's messages in order.
func (s *ChatService) Messages(ctx context.Context, publicID string) ([]model.ChatMessage, error) {
	conversation, err := s.find(ctx, publicID)
	if err != nil {
		return nil, err
	}

	var messages []model.ChatMessage
	err = s.db.WithContext(ctx).
		Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// Escalate moves an open conversation to escalated and alerts staff.
func (s *ChatService) Escalate(ctx context.Context, publicID string) (*model.ChatConversation, error) {
	conversation, err := s.find(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if conversation.Status != model.ChatOpen {
		return nil, fmt.Errorf("%w: only open conversations can be escalated", ErrValidation)
	}

	if err := s.db.WithContext(ctx).Model(conversation).Update("status", model.ChatEscalated).Error; err != nil {
		return nil, fmt.Errorf("failed to escalate conversation: %w", err)
	}

	userName := conversation.UserName
	userEmail := conversation.UserEmail
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "chat_escalate_notify_staff",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.NotifyRole(taskCtx,
				[]model.Role{model.RoleStaff, model.RoleAdmin},
				model.NotificationChat,
				"Chat escalated",
				fmt.Sprintf("%s (%s) requested human support.", userName, userEmail))
		},
	})
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "chat_escalate_webhook",
		Fn: func(taskCtx context.Context) error {
			return s.webhook.Send(taskCtx, fmt.Sprintf("💬 Chat escalated by **%s** (%s)", userName, userEmail))
		},
	})

	return conversation, nil
}

package chat

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// ChatHandler serves the support-chat widget. Conversations are
// addressed by opaque public IDs so unauthenticated visitors can hold
// them safely.
type ChatHandler struct {
	chat      *services.ChatService
	validator *validation.Validator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chat:      chat,
		validator: validation.NewValidator(),
	}
}

// StartRequest opens a new support conversation.
type StartRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// Start opens a conversation and returns it with the bot greeting.
// POST /api/chat (public)
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	var req StartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Name and a valid email are required")
	}

	// Visitors may chat anonymously; link the account when present.
	var userID *uint
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}

	conversation, err := h.chat.Start(c.Context(), req.Name, req.Email, userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Conversation started", conversation)
}

// MessageRequest appends one message to a conversation.
type MessageRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

// Append adds a visitor message to the conversation.
// POST /api/chat/:publicId/messages (public)
func (h *ChatHandler) Append(c *fiber.Ctx) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Message is required")
	}

	sender := model.SenderUser
	senderName := ""
	if user := middleware.CurrentUser(c); user != nil {
		senderName = user.DisplayName
		if user.Role.In(model.RoleStaff, model.RoleAdmin) {
			sender = model.SenderStaff
		}
	}

	message, err := h.chat.Append(c.Context(), c.Params("publicId"), sender, senderName, req.Message)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Created(c, message)
}

// Messages returns the conversation's messages in order.
// GET /api/chat/:publicId/messages (public)
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	messages, err := h.chat.Messages(c.Context(), c.Params("publicId"))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, messages)
}

// Escalate hands the conversation over to human staff.
// POST /api/chat/:publicId/escalate (public)
func (h *ChatHandler) Escalate(c *fiber.Ctx) error {
	conversation, err := h.chat.Escalate(c.Context(), c.Params("publicId"))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Conversation escalated to support staff", conversation)
}

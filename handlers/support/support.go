package support

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// SupportHandler handles contact-form submissions
type SupportHandler struct {
	support   *services.SupportService
	validator *validation.Validator
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{
		support:   support,
		validator: validation.NewValidator(),
	}
}

// Create accepts a contact-form submission and relays it to staff.
// POST /api/support (public, rate limited)
func (h *SupportHandler) Create(c *fiber.Ctx) error {
	var req services.CreateSupportInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Name, a valid email and a message are required")
	}

	msg, err := h.support.Create(c.Context(), req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Message received. We'll get back to you soon.", msg)
}

// List returns the staff support inbox, paginated.
// GET /api/support (roles: staff, admin)
func (h *SupportHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	messages, total, err := h.support.List(c.Context(), limit, (page-1)*limit)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, messages, response.CalculatePagination(page, limit, total))
}

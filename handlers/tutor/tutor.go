package tutor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// TutorHandler handles the public tutor listing, tutor self-service
// profile edits and the legacy staff roster write.
type TutorHandler struct {
	tutors    *services.TutorService
	validator *validation.Validator
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(tutors *services.TutorService) *TutorHandler {
	return &TutorHandler{
		tutors:    tutors,
		validator: validation.NewValidator(),
	}
}

// List returns all tutors, optionally filtered by category.
// GET /api/tutors
func (h *TutorHandler) List(c *fiber.Ctx) error {
	category := model.TutorCategory(c.Query("category"))
	tutors, err := h.tutors.List(c.Context(), category)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, tutors)
}

// UpsertProfile lets a tutor create or edit their own profile.
// PUT /api/tutors/me
func (h *TutorHandler) UpsertProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req services.TutorProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "All required profile fields must be provided")
	}

	profile, err := h.tutors.UpsertProfile(c.Context(), user, req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Tutor profile saved", profile.ToResponse(user.DisplayName))
}

// RosterCreate is the legacy staff-portal write that adds a tutor
// directly to the roster.
// POST /api/tutors
func (h *TutorHandler) RosterCreate(c *fiber.Ctx) error {
	var req services.RosterCreateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "All required fields must be provided")
	}

	profile, err := h.tutors.RosterCreate(c.Context(), req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Tutor added successfully", profile.ToResponse(profile.User.DisplayName))
}

package application

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// ApplicationHandler handles tutor application intake and review
type ApplicationHandler struct {
	applications *services.ApplicationService
	validator    *validation.Validator
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		validator:    validation.NewValidator(),
	}
}

// Create submits a tutor application from the public form.
// POST /api/tutor-applications (public)
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req services.CreateApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "All application fields are required")
	}

	app, err := h.applications.Create(c.Context(), req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Application submitted successfully", app)
}

// List returns applications for the review queue, optionally filtered
// by status.
// GET /api/tutor-applications (roles: staff, admin)
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	status := model.ApplicationStatus(c.Query("status"))

	apps, err := h.applications.List(c.Context(), status)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, apps)
}

// UpdateStatusRequest carries the review decision.
type UpdateStatusRequest struct {
	Status model.ApplicationStatus `json:"status" validate:"required"`
}

// UpdateStatus approves or rejects an application.
// PATCH /api/tutor-applications/:id/status (roles: staff, admin)
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.applications.UpdateStatus(c.Context(), actor, uint(id), req.Status, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Application updated successfully", app)
}

package enrollment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// EnrollmentHandler handles enrollment creation and lifecycle requests
type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
	validator   *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollments *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		validator:   validation.NewValidator(),
	}
}

// Create starts a monthly enrollment with a tutor.
// POST /api/enrollments (role: student)
func (h *EnrollmentHandler) Create(c *fiber.Ctx) error {
	student := middleware.CurrentUser(c)

	var req services.CreateEnrollmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Tutor ID and a positive monthly rate are required")
	}

	enrollment, err := h.enrollments.Create(c.Context(), student, req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Enrollment created successfully", enrollment.ToResponse())
}

// ListMine returns enrollments where the caller is student or tutor.
// GET /api/enrollments/my
func (h *EnrollmentHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	enrollments, err := h.enrollments.ListForUser(c.Context(), user.ID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	out := make([]model.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, enrollments[i].ToResponse())
	}
	return response.Success(c, out)
}

// UpdateStatusRequest carries the target lifecycle state.
type UpdateStatusRequest struct {
	Status model.EnrollmentStatus `json:"status" validate:"required"`
}

// UpdateStatus transitions an enrollment (cancel, complete, pause).
// PATCH /api/enrollments/:id/status
func (h *EnrollmentHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	enrollment, err := h.enrollments.UpdateStatus(c.Context(), user, uint(id), req.Status, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Enrollment updated successfully", enrollment.ToResponse())
}

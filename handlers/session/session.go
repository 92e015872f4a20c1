package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// SessionHandler handles session scheduling and attendance requests
type SessionHandler struct {
	sessions  *services.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// Create schedules a session on one of the tutor's enrollments.
// POST /api/sessions (role: tutor)
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	tutor := middleware.CurrentUser(c)

	var req services.CreateSessionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Enrollment ID and scheduled time are required")
	}

	session, err := h.sessions.Create(c.Context(), tutor, req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Session created successfully", session.ToResponse())
}

// ListMine returns sessions on the caller's enrollments.
// GET /api/sessions/my
func (h *SessionHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	sessions, err := h.sessions.ListForUser(c.Context(), user.ID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	out := make([]model.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessions[i].ToResponse())
	}
	return response.Success(c, out)
}

// MarkAttendanceRequest carries one party's attendance self-report.
type MarkAttendanceRequest struct {
	Status model.AttendanceMark `json:"status" validate:"required"`
}

// MarkAttendance records the caller's attendance mark for a session.
// PATCH /api/sessions/:id/attendance
func (h *SessionHandler) MarkAttendance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid session ID")
	}

	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.sessions.MarkAttendance(c.Context(), user, uint(id), req.Status, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Attendance recorded", session.ToResponse())
}

package booking

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// BookingHandler handles demo-class booking requests
type BookingHandler struct {
	bookings  *services.BookingService
	validator *validation.Validator
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookings:  bookings,
		validator: validation.NewValidator(),
	}
}

// Create submits a demo-class request for a tutor. The requester may
// not have an account, so contact details travel in the body.
// POST /api/bookings (public)
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req services.CreateBookingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Name, a valid email and tutor ID are required")
	}

	booking, err := h.bookings.Create(c.Context(), req)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Booking request submitted successfully", booking)
}

// ListMine returns booking requests addressed to the calling tutor.
// GET /api/bookings/my (role: tutor)
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	tutor := middleware.CurrentUser(c)

	bookings, err := h.bookings.ListForTutor(c.Context(), tutor.ID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, bookings)
}

// UpdateStatusRequest carries the target booking state.
type UpdateStatusRequest struct {
	Status model.BookingStatus `json:"status" validate:"required"`
}

// UpdateStatus confirms, completes or cancels a booking.
// PATCH /api/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookings.UpdateStatus(c.Context(), user, uint(id), req.Status)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Booking updated successfully", booking)
}

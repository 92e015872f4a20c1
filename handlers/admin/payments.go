package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// RecordPayment records a monthly payment against an enrollment.
// POST /api/admin/payments (role: admin)
func (h *AdminHandler) RecordPayment(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req services.RecordPaymentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Enrollment ID, a positive amount and period month are required")
	}

	payment, err := h.payments.Record(c.Context(), admin, req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Payment recorded successfully", payment)
}

// PaymentStatusRequest carries the target settlement state.
type PaymentStatusRequest struct {
	Status model.PaymentStatus `json:"status" validate:"required"`
}

// UpdatePaymentStatus moves a payment between settlement states.
// PATCH /api/admin/payments/:id/status (role: admin)
func (h *AdminHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req PaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.payments.UpdateStatus(c.Context(), admin, uint(id), req.Status, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Payment updated successfully", payment)
}

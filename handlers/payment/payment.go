package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// PaymentHandler serves the caller's payment history
type PaymentHandler struct {
	payments *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// ListMine returns payments where the caller is student or tutor.
// GET /api/payments/my
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	payments, err := h.payments.ListForUser(c.Context(), user.ID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, payments)
}

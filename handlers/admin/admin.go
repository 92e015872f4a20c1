package admin

import (
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/validation"
)

// AdminHandler groups the admin-panel surface: user management,
// platform settings, review moderation, guide authoring, payment
// recording and the audit-log viewer.
type AdminHandler struct {
	users     *services.UserService
	settings  *services.SettingsService
	reviews   *services.ReviewService
	guides    *services.GuideService
	payments  *services.PaymentService
	audit     *services.AuditService
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	users *services.UserService,
	settings *services.SettingsService,
	reviews *services.ReviewService,
	guides *services.GuideService,
	payments *services.PaymentService,
	audit *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		users:     users,
		settings:  settings,
		reviews:   reviews,
		guides:    guides,
		payments:  payments,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

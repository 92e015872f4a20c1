package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// ListSettings returns all platform settings.
// GET /api/admin/settings (role: admin)
func (h *AdminHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.settings.List(c.Context())
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, settings)
}

// GetSetting returns one platform setting by key.
// GET /api/admin/settings/:key (role: admin)
func (h *AdminHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.Context(), c.Params("key"))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, setting)
}

// UpsertSettingRequest carries a setting's new value.
type UpsertSettingRequest struct {
	Value       string `json:"value" validate:"required"`
	Description string `json:"description" validate:"max=500"`
}

// UpsertSetting creates or replaces a platform setting.
// PUT /api/admin/settings/:key (role: admin)
func (h *AdminHandler) UpsertSetting(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Value is required")
	}

	setting, err := h.settings.Upsert(c.Context(), c.Params("key"), req.Value, req.Description, admin.ID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Setting saved successfully", setting)
}

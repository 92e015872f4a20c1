package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// CreateGuide publishes a new help article.
// POST /api/admin/guides (role: admin)
func (h *AdminHandler) CreateGuide(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req services.GuideInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Slug, title and content are required")
	}

	guide, err := h.guides.Create(c.Context(), admin, req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Guide created successfully", guide)
}

// UpdateGuide replaces a guide's default-language content.
// PUT /api/admin/guides/:id (role: admin)
func (h *AdminHandler) UpdateGuide(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid guide ID")
	}

	var req services.GuideInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Slug, title and content are required")
	}

	guide, err := h.guides.Update(c.Context(), admin, uint(id), req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Guide updated successfully", guide)
}

// UpsertGuideTranslation creates or replaces one language variant.
// PUT /api/admin/guides/:id/translations (role: admin)
func (h *AdminHandler) UpsertGuideTranslation(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid guide ID")
	}

	var req services.TranslationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Language, title and content are required")
	}

	translation, err := h.guides.UpsertTranslation(c.Context(), admin, uint(id), req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Translation saved successfully", translation)
}

// DeleteGuide removes a guide and its translations.
// DELETE /api/admin/guides/:id (role: admin)
func (h *AdminHandler) DeleteGuide(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid guide ID")
	}

	if err := h.guides.Delete(c.Context(), admin, uint(id), handlers.Meta(c)); err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Guide deleted successfully", nil)
}

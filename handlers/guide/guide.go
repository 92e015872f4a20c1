package guide

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/response"
)

// GuideHandler serves the public help-center articles. Language is
// negotiated via the ?lang query with fallback to the default.
type GuideHandler struct {
	guides *services.GuideService
}

// NewGuideHandler creates a new guide handler
func NewGuideHandler(guides *services.GuideService) *GuideHandler {
	return &GuideHandler{guides: guides}
}

// List returns published guides localized to the requested language.
// GET /api/guides (public)
func (h *GuideHandler) List(c *fiber.Ctx) error {
	guides, err := h.guides.ListPublished(c.Context(), c.Query("category"), c.Query("lang"))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, guides)
}

// Get returns one published guide by slug.
// GET /api/guides/:slug (public)
func (h *GuideHandler) Get(c *fiber.Ctx) error {
	guide, err := h.guides.GetBySlug(c.Context(), c.Params("slug"), c.Query("lang"))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Success(c, guide)
}

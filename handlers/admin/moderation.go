package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// ListReviews returns reviews for the moderation queue, including
// hidden ones. ?flagged=true narrows to flagged reviews.
// GET /api/admin/reviews (role: admin)
func (h *AdminHandler) ListReviews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reviews, total, err := h.reviews.ListForModeration(c.Context(), c.QueryBool("flagged", false), limit, (page-1)*limit)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	out := make([]model.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].ToResponse())
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// ModerateReview updates a review's visibility, flag or notes. Only
// fields present in the body change.
// PATCH /api/admin/reviews/:id (role: admin)
func (h *AdminHandler) ModerateReview(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid review ID")
	}

	var req services.ModerateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	review, err := h.reviews.Moderate(c.Context(), admin, uint(id), req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Review updated successfully", review.ToResponse())
}

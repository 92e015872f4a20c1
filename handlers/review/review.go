package review

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
)

// ReviewHandler handles review submission and the public review listing
type ReviewHandler struct {
	reviews   *services.ReviewService
	validator *validation.Validator
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: validation.NewValidator(),
	}
}

// Create submits a review for a tutor the student has studied with.
// POST /api/reviews (role: student)
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	student := middleware.CurrentUser(c)

	var req services.CreateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Tutor ID, enrollment ID and rating are required")
	}

	review, err := h.reviews.Create(c.Context(), student, req, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.CreatedWithMessage(c, "Review submitted successfully", review.ToResponse())
}

// ListByTutor returns the visible reviews for a tutor.
// GET /api/reviews/tutor/:tutorId (public)
func (h *ReviewHandler) ListByTutor(c *fiber.Ctx) error {
	tutorID, err := c.ParamsInt("tutorId")
	if err != nil || tutorID <= 0 {
		return response.BadRequest(c, "Invalid tutor ID")
	}

	reviews, err := h.reviews.VisibleForTutor(c.Context(), uint(tutorID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	out := make([]model.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].ToResponse())
	}
	return response.Success(c, out)
}

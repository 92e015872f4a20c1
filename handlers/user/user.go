package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"github.com/tutorslink/api/utils/validation"
	"gorm.io/gorm"
)

// UserHandler handles user registration and profile requests
type UserHandler struct {
	db        *gorm.DB
	identity  *services.IdentityService
	tutors    *services.TutorService
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB, identity *services.IdentityService, tutors *services.TutorService) *UserHandler {
	return &UserHandler{
		db:        db,
		identity:  identity,
		tutors:    tutors,
		validator: validation.NewValidator(),
	}
}

// Register upserts the caller's local account from their verified
// identity. The request body from the original client carried the uid
// and email, but only the verified token claims are trusted; the guard
// has already run the upsert, so this returns the resolved user.
// POST /api/users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "")
	}
	return response.CreatedWithMessage(c, "User registered successfully", user.ToResponse())
}

// MeResponse bundles the profile with the tutor extension when present.
type MeResponse struct {
	User  model.UserResponse   `json:"user"`
	Tutor *model.TutorResponse `json:"tutor_profile,omitempty"`
}

// GetMe returns the caller's profile, including the tutor profile for
// tutors.
// GET /api/users/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	out := MeResponse{User: user.ToResponse()}
	if user.Role == model.RoleTutor {
		profile, err := h.tutors.GetByUserID(c.Context(), user.ID)
		if err == nil {
			resp := profile.ToResponse(user.DisplayName)
			out.Tutor = &resp
		}
	}

	return response.Success(c, out)
}

// UpdateMeRequest carries the self-editable profile fields.
type UpdateMeRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=255"`
	Locale      *string `json:"locale" validate:"omitempty,min=2,max=10"`
	Timezone    *string `json:"timezone" validate:"omitempty,max=64"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
}

// UpdateMe updates the caller's profile preferences. Role and email are
// not self-editable; roles change only through admin action and email
// only through the identity provider.
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Invalid profile fields")
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Locale != nil {
		updates["locale"] = *req.Locale
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Context()).Model(user).Updates(updates).Error; err != nil {
			return handlers.ServiceError(c, err)
		}
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", user.ToResponse())
}

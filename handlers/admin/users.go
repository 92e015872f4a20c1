package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
)

// ListUsers returns accounts, optionally filtered by role.
// GET /api/admin/users?role=tutor (role: admin)
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.users.List(c.Context(), model.Role(c.Query("role")), limit, (page-1)*limit)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return response.Paginated(c, out, response.CalculatePagination(page, limit, total))
}

// ChangeRoleRequest carries the target role.
type ChangeRoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// ChangeUserRole moves a user to a new role.
// PATCH /api/admin/users/:id/role (role: admin)
func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.users.ChangeRole(c.Context(), admin, uint(id), req.Role, handlers.Meta(c))
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.SuccessWithMessage(c, "Role updated successfully", user.ToResponse())
}

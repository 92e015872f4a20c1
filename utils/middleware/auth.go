package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/utils/identity"
	"github.com/tutorslink/api/utils/response"
)

// IdentityResolver maps a bearer token to the local user, creating the
// account on first sight. Implemented by services.IdentityService.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware gates protected routes on a verified identity.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// currentUserKey is the fiber.Ctx locals key for the resolved user.
const currentUserKey = "current_user"

// CurrentUser returns the user the guard attached to the request, or
// nil on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}

// Required resolves the caller exactly once per request and attaches
// the user to the context. 401 when no valid identity is presented.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		user, err := m.resolver.Resolve(c.Context(), parts[1])
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				return response.Unauthorized(c, "Invalid token")
			}
			return response.InternalServerError(c, "Failed to resolve identity")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// Optional resolves the caller when a valid bearer token is present
// and continues anonymously otherwise. Used on public endpoints that
// personalize when an account exists, like the support chat.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if user, err := m.resolver.Resolve(c.Context(), parts[1]); err == nil {
				c.Locals(currentUserKey, user)
			}
		}
		return c.Next()
	}
}

// RequireRoles rejects callers whose role is outside the allowed set.
// Must run after Required.
func (m *AuthMiddleware) RequireRoles(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "Missing authorization token")
		}
		if !user.Role.In(roles...) {
			return response.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}

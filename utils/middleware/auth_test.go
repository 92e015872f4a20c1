package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/utils/identity"
)

// stubResolver maps fixed tokens to users.
type stubResolver struct {
	users map[string]*model.User
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return user, nil
}

func guardedApp(t *testing.T, roles ...model.Role) *fiber.App {
	t.Helper()

	auth := NewAuthMiddleware(&stubResolver{users: map[string]*model.User{
		"student-token": {ID: 1, Role: model.RoleStudent, DisplayName: "Student"},
		"admin-token":   {ID: 2, Role: model.RoleAdmin, DisplayName: "Admin"},
	}})

	app := fiber.New()
	chain := []fiber.Handler{auth.Required()}
	if len(roles) > 0 {
		chain = append(chain, auth.RequireRoles(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": CurrentUser(c).ID})
	})
	app.Get("/protected", chain...)
	return app
}

func TestRequiredRejectsMissingToken(t *testing.T) {
	app := guardedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredRejectsMalformedHeader(t *testing.T) {
	app := guardedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredRejectsInvalidToken(t *testing.T) {
	app := guardedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredAttachesUser(t *testing.T) {
	app := guardedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// failingResolver simulates a deployment with no verifier wired.
type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	return nil, identity.ErrNoVerifier
}

func TestRequiredResolverFailureIsServerError(t *testing.T) {
	auth := NewAuthMiddleware(failingResolver{})

	app := fiber.New()
	app.Get("/protected", auth.Required(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// A misconfigured service is our fault, never the caller's 401.
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-looking-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRequireRolesForbidsOutsiders(t *testing.T) {
	app := guardedApp(t, model.RoleStaff, model.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRolesAdmitsMembers(t *testing.T) {
	app := guardedApp(t, model.RoleStaff, model.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalContinuesAnonymously(t *testing.T) {
	auth := NewAuthMiddleware(&stubResolver{users: map[string]*model.User{
		"student-token": {ID: 1, Role: model.RoleStudent},
	}})

	app := fiber.New()
	app.Get("/open", auth.Optional(), func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.JSON(fiber.Map{"user_id": user.ID})
		}
		return c.JSON(fiber.Map{"user_id": nil})
	})

	// No token: anonymous, not 401.
	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Bad token: still anonymous.
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Valid token attaches the account.
	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

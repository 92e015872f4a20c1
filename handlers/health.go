package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/database"
	"github.com/tutorslink/api/utils/response"
)

// HandleCheckHealth reports liveness plus datastore connectivity.
// GET /api/health
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	databaseUp := store.Ping() == nil
	return response.Success(c, fiber.Map{
		"status":   "ok",
		"database": databaseUp,
	})
}

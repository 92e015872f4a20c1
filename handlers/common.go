package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/services"
	"github.com/tutorslink/api/utils/middleware"
	"github.com/tutorslink/api/utils/response"
	"gorm.io/gorm"
)

// ServiceError maps workflow errors onto the HTTP error taxonomy.
// Unrecognized errors become a generic 500 with the detail logged.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return response.BadRequest(c, stripSentinel(err, services.ErrValidation))
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, stripSentinel(err, services.ErrNotFound))
	case errors.Is(err, services.ErrForbidden):
		return response.Forbidden(c, stripSentinel(err, services.ErrForbidden))
	case errors.Is(err, services.ErrDuplicate):
		return response.Conflict(c, stripSentinel(err, services.ErrDuplicate))
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Repository lookups that bubble up unwrapped still mean 404.
		return response.NotFound(c, "")
	default:
		log.Printf("unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "")
	}
}

func stripSentinel(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// Meta collects per-request correlation data for audit entries.
func Meta(c *fiber.Ctx) services.AuditMeta {
	return services.AuditMeta{
		RequestID: middleware.RequestID(c),
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

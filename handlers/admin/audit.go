package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorslink/api/handlers"
	"github.com/tutorslink/api/utils/response"
)

// ListAuditLogs returns audit entries, newest first, optionally
// filtered by action or entity type.
// GET /api/admin/audit-logs (role: admin)
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, total, err := h.audit.List(c.Context(), c.Query("action"), c.Query("entity_type"), limit, (page-1)*limit)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return response.Paginated(c, logs, response.CalculatePagination(page, limit, total))
}

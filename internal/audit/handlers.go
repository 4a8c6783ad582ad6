package audit

import (
	"strconv"

	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the admin audit trail.
type Handlers struct {
	Service *Service
}

// List GET /api/v1/admin/audit-events?limit
func (h *Handlers) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.Service.List(c.Context(), limit)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Audit events", fiber.Map{"rows": rows}, nil)
}

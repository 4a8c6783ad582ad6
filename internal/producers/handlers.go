package producers

import (
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for producer endpoints.
type Handlers struct {
	Service *Service
}

// ListActive GET /api/v1/producers — active producers for transfer pickers.
// Visible to any authenticated role: producers need the list to pick a
// transfer destination.
func (h *Handlers) ListActive(c *fiber.Ctx) error {
	rows, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.Error(c, "Could not load producers", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Active producers", fiber.Map{"rows": rows}, nil)
}

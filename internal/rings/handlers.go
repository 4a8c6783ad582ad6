package rings

import (
	"strconv"

	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for admin ring pool endpoints.
type Handlers struct {
	Service *Service
}

// GenerateRings POST /api/v1/admin/generate-rings
func (h *Handlers) GenerateRings(c *fiber.Ctx) error {
	var body struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Count int `json:"count"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}

	ringNumbers, err := h.Service.GenerateBatch(c.Context(), body.Year, body.Month, body.Count)
	if err != nil {
		switch err {
		case ErrInvalidYear, ErrInvalidMonth, ErrInvalidCount:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrBatchConflict:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
	}

	return response.Success(c, "Rings generated", fiber.Map{
		"ok":    true,
		"rings": ringNumbers,
	}, nil)
}

// RingPool GET /api/v1/admin/ring-pool?year&month
func (h *Handlers) RingPool(c *fiber.Ctx) error {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		return response.Error(c, "year and month are required", fiber.StatusBadRequest, nil)
	}

	rows, err := h.Service.ListPool(c.Context(), year, month)
	if err != nil {
		switch err {
		case ErrInvalidYear, ErrInvalidMonth:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
	}

	return response.Success(c, "Ring pool", fiber.Map{"rows": rows}, nil)
}

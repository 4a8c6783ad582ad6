package movements

import (
	"strconv"
	"time"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for movement history endpoints.
type Handlers struct {
	Service *Service
	Gate    *access.Gate
}

// OutHistory GET /api/v1/admin/out-history?from&to&reason&producer_id&limit
// Admin-only (route gated by permission middleware); raw backend messages are
// acceptable on this internal tooling surface.
func (h *Handlers) OutHistory(c *fiber.Ctx) error {
	f := Filters{Type: constants.MovementOut}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.Error(c, "Invalid from date (YYYY-MM-DD)", fiber.StatusBadRequest, nil)
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.Error(c, "Invalid to date (YYYY-MM-DD)", fiber.StatusBadRequest, nil)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	f.OutReason = c.Query("reason")
	if v := c.Query("producer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid producer_id", fiber.StatusBadRequest, nil)
		}
		f.ProducerID = &id
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	rows, err := h.Service.Query(c.Context(), access.Scope{Global: true}, f)
	if err != nil {
		if err == ErrInvalidReason {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Out history", fiber.Map{"rows": rows}, nil)
}

// TransferHistory GET /api/v1/admin/transfer-history?limit
func (h *Handlers) TransferHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.Service.Query(c.Context(), access.Scope{Global: true}, Filters{
		Type:  constants.MovementTransfer,
		Limit: limit,
	})
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transfer history", fiber.Map{"rows": rows}, nil)
}

// History GET /api/v1/movements/history?type&limit — scoped to the caller.
func (h *Handlers) History(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.Service.Query(c.Context(), actor.Scope(), Filters{
		Type:  c.Query("type"),
		Limit: limit,
	})
	if err != nil {
		return response.Error(c, "Could not load history", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Movement history", fiber.Map{"rows": rows}, nil)
}

func gateError(c *fiber.Ctx, err error) error {
	switch err {
	case access.ErrNotAuthenticated:
		return response.Unauthorized(c, "Unauthorized")
	case access.ErrNoProfile, access.ErrProfileInactive, access.ErrNoProducerScope:
		return response.Forbidden(c, err.Error())
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

package roosters

import (
	"strings"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for registry endpoints.
type Handlers struct {
	Service *Service
	Gate    *access.Gate
}

// ListActive GET /api/v1/roosters — scoped active rings.
func (h *Handlers) ListActive(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}
	rows, err := h.Service.ListActive(c.Context(), actor.Scope())
	if err != nil {
		return response.Error(c, "Could not load roosters", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Active roosters", fiber.Map{"rows": rows}, nil)
}

// Timeline GET /api/v1/roosters/:ring_number — rooster + movement history.
func (h *Handlers) Timeline(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}
	ring := strings.ToUpper(strings.TrimSpace(c.Params("ring_number")))
	if ring == "" {
		return response.Error(c, "ring_number is required", fiber.StatusBadRequest, nil)
	}

	rooster, history, err := h.Service.GetTimeline(c.Context(), actor.Scope(), ring)
	if err != nil {
		switch err {
		case ErrRingNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case ErrNotLinked:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Could not load ring", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Ring timeline", fiber.Map{
		"rooster":   rooster,
		"movements": history,
	}, nil)
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

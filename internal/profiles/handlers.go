package profiles

import (
	"anilhas-backend/internal/access"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the caller's own profile.
type Handlers struct {
	Service *Service
	Gate    *access.Gate
}

// Me GET /api/v1/profile — the full profile row for the session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}
	profile, err := h.Service.Get(c.Context(), actor.UserID)
	if err != nil {
		return profileError(c, err)
	}
	return response.Success(c, "Profile", fiber.Map{"profile": profile}, nil)
}

// Update PATCH /api/v1/profile — contact fields only, own row only.
func (h *Handlers) Update(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		NIF     *string `json:"nif"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}

	profile, err := h.Service.Update(c.Context(), actor.UserID, UpdateInput{
		Name:    body.Name,
		Phone:   body.Phone,
		Address: body.Address,
		NIF:     body.NIF,
	})
	if err != nil {
		return profileError(c, err)
	}
	return response.Success(c, "Profile updated", fiber.Map{"profile": profile}, nil)
}

func profileError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidNIF:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case ErrProfileNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	}
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
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

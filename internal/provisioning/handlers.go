package provisioning

import (
	"anilhas-backend/internal/access"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for admin user management endpoints. Routes are
// permission-gated; the gate re-resolves the actor so a deactivated admin
// cannot keep provisioning with a stale session.
type Handlers struct {
	Service *Service
	Gate    *access.Gate
}

// CreateUser POST /api/v1/admin/create-user
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}

	tempPassword, profile, err := h.Service.CreateProducerAccount(c.Context(), actor.UserID, in)
	if err != nil {
		switch err {
		case ErrNameRequired, ErrInvalidEmail, ErrInvalidNIF, ErrInvalidRole, ErrEmailTaken, ErrProducerNotFound:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
		}
	}

	// The temp password appears in this response and nowhere else.
	return response.SuccessCreated(c, "User created", fiber.Map{
		"ok":            true,
		"temp_password": tempPassword,
		"profile":       profile,
	}, nil)
}

// ResetPassword POST /api/v1/admin/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	targetID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
	}

	tempPassword, err := h.Service.ResetPassword(c.Context(), actor.UserID, targetID)
	if err != nil {
		if err == ErrUserNotFound {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Password reset", fiber.Map{
		"ok":            true,
		"temp_password": tempPassword,
	}, nil)
}

// ToggleActive POST /api/v1/admin/toggle-active
func (h *Handlers) ToggleActive(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		UserID   string `json:"user_id"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	targetID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
	}

	isActive, err := h.Service.ToggleActive(c.Context(), actor.UserID, targetID, body.IsActive)
	if err != nil {
		if err == ErrUserNotFound {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Active flag updated", fiber.Map{
		"ok":        true,
		"is_active": isActive,
	}, nil)
}

// ListUsers GET /api/v1/admin/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	if _, err := h.Gate.Resolve(c); err != nil {
		return gateError(c, err)
	}
	rows, err := h.Service.ListUsers(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Users", fiber.Map{"rows": rows}, nil)
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

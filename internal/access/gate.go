package access

import (
	"context"

	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the resolved caller: identity plus role and producer binding.
// Every lifecycle operation and scoped query takes an Actor (or its Scope),
// never a raw role string.
type Actor struct {
	UserID     uuid.UUID
	Email      string
	Role       string
	ProducerID *uuid.UUID
	Name       string
}

// Scope is the visibility/mutation boundary derived from an Actor.
// Global scope sees everything; producer scope is restricted to rings and
// movements linked to one producer id.
type Scope struct {
	Global     bool
	ProducerID uuid.UUID
}

// Scope returns the actor's scope. Admins get global scope.
func (a *Actor) Scope() Scope {
	if a.Role == constants.Admin {
		return Scope{Global: true}
	}
	if a.ProducerID != nil {
		return Scope{ProducerID: *a.ProducerID}
	}
	return Scope{}
}

// IsAdmin reports whether the actor has the ADMIN role.
func (a *Actor) IsAdmin() bool {
	return a.Role == constants.Admin
}

// Gate resolves session users to Actors. It re-reads the profile row on every
// resolution so a deactivated profile loses access immediately, and fails
// closed: no session, no profile, or inactive profile all yield an error,
// never a permissive default.
type Gate struct {
	DB *gorm.DB
}

// Resolve turns the session user stored in Fiber Locals into an Actor.
func (g *Gate) Resolve(c *fiber.Ctx) (*Actor, error) {
	user := c.Locals("user")
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := user.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userIDStr, _ := m["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return g.ResolveUserID(c.Context(), userID)
}

// ResolveUserID loads and validates the profile for a user id.
func (g *Gate) ResolveUserID(ctx context.Context, userID uuid.UUID) (*Actor, error) {
	var profile domain.Profile
	if err := g.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	if !profile.IsActive {
		return nil, ErrProfileInactive
	}
	if profile.Role == constants.Producer && profile.ProducerID == nil {
		return nil, ErrNoProducerScope
	}
	actor := &Actor{
		UserID:     profile.UserID,
		Email:      profile.Email,
		Role:       profile.Role,
		ProducerID: profile.ProducerID,
	}
	if profile.Name != nil {
		actor.Name = *profile.Name
	}
	return actor, nil
}

package middleware

import (
	"anilhas-backend/internal/access"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActiveProfile re-reads the caller's profile row through the gate on every
// request, so deactivating an account cuts access immediately instead of at
// session expiry. The session role string alone is never enough for routes
// whose handlers do not resolve the gate themselves. Place after RequireAuth.
func ActiveProfile(gate *access.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := gate.Resolve(c); err != nil {
			switch err {
			case access.ErrNotAuthenticated:
				return response.Unauthorized(c, "Unauthorized")
			case access.ErrNoProfile, access.ErrProfileInactive, access.ErrNoProducerScope:
				return response.Forbidden(c, err.Error())
			}
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
		return c.Next()
	}
}

package profiles

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileApp(t *testing.T, sessionUser map[string]interface{}) (*fiber.App, *Handlers) {
	svc, db := setupProfilesTest(t)
	h := &Handlers{Service: svc, Gate: &access.Gate{DB: db}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if sessionUser != nil {
			c.Locals("user", sessionUser)
		}
		return c.Next()
	})
	app.Get("/profile", h.Me)
	app.Patch("/profile", h.Update)
	return app, h
}

func sessionForUser(userID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"user_id": userID.String(),
		"role":    constants.Admin,
	}
}

func TestMeHandler_Unauthenticated(t *testing.T) {
	app, _ := profileApp(t, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMeHandler_InactiveProfileForbidden(t *testing.T) {
	userID := uuid.New()
	app, h := profileApp(t, sessionForUser(userID))
	require.NoError(t, h.Service.DB.Create(&domain.Profile{
		UserID: userID, Email: "a@example.com", Role: constants.Admin, IsActive: false,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMeHandler_ReturnsOwnRow(t *testing.T) {
	userID := uuid.New()
	app, h := profileApp(t, sessionForUser(userID))
	nif := "123456789"
	require.NoError(t, h.Service.DB.Create(&domain.Profile{
		UserID: userID, Email: "a@example.com", Role: constants.Admin, IsActive: true, NIF: &nif,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	profile, _ := data["profile"].(map[string]interface{})
	require.NotNil(t, profile)
	assert.Equal(t, "a@example.com", profile["email"])
	assert.Equal(t, constants.Admin, profile["role"])
	assert.Equal(t, "123456789", profile["nif"])
}

func TestUpdateHandler_SavesAndNormalizes(t *testing.T) {
	userID := uuid.New()
	app, h := profileApp(t, sessionForUser(userID))
	require.NoError(t, h.Service.DB.Create(&domain.Profile{
		UserID: userID, Email: "a@example.com", Role: constants.Admin, IsActive: true,
	}).Error)

	body, _ := json.Marshal(map[string]string{
		"name": " Maria Silva ",
		"nif":  "123 456 789",
	})
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var row domain.Profile
	require.NoError(t, h.Service.DB.First(&row, "user_id = ?", userID).Error)
	require.NotNil(t, row.Name)
	assert.Equal(t, "Maria Silva", *row.Name)
	require.NotNil(t, row.NIF)
	assert.Equal(t, "123456789", *row.NIF)
}

func TestUpdateHandler_InvalidNIF(t *testing.T) {
	userID := uuid.New()
	app, h := profileApp(t, sessionForUser(userID))
	require.NoError(t, h.Service.DB.Create(&domain.Profile{
		UserID: userID, Email: "a@example.com", Role: constants.Admin, IsActive: true,
	}).Error)

	body, _ := json.Marshal(map[string]string{"nif": "12 34"})
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

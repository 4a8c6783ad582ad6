package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"anilhas-backend/internal/domain"
	"anilhas-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserFinder for tests: returns the configured pair or error.
type fakeUserFinder struct {
	user    *domain.User
	profile *domain.Profile
	err     error
}

func (f *fakeUserFinder) FindByEmailAndPassword(email, password string) (*domain.User, *domain.Profile, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	if f.user != nil && f.user.Email == email && password == "password123" {
		return f.user, f.profile, nil
	}
	if f.user != nil && f.user.Email == email {
		return nil, nil, ErrIncorrectPassword
	}
	return nil, nil, ErrInvalidEmail
}

func setupAuthHandlers(t *testing.T, finder UserFinder) (*Handlers, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{
		UserFinder: finder,
		Rdb:        rdb,
		Config: middleware.SessionConfig{
			AllowCrossSiteDev: false,
			IsProduction:      false,
		},
	}
	return h, rdb
}

func testUserAndProfile() (*domain.User, *domain.Profile) {
	uid := uuid.New()
	pid := uuid.New()
	name := "João Silva"
	u := &domain.User{UserID: uid, Email: "joao@example.com"}
	p := &domain.Profile{UserID: uid, Email: u.Email, Role: "PRODUCER", IsActive: true, ProducerID: &pid, Name: &name}
	return u, p
}

func TestLogin_MissingCredentials(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_InvalidEmail(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com", "password": "any"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_DisabledAccount(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{err: ErrAccountDisabled})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "off@example.com", "password": "password123"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	u, p := testUserAndProfile()
	h, _ := setupAuthHandlers(t, &fakeUserFinder{user: u, profile: p})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": u.Email, "password": "password123"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Login successful", out["message"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, u.Email, user["email"])
	assert.Equal(t, "PRODUCER", user["role"])
	assert.Equal(t, "João Silva", user["name"])
	assert.Equal(t, p.ProducerID.String(), user["producer_id"])

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "galo.sid=")
}

func TestMe_Unauthenticated(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_WithSession(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"email":   "joao@example.com",
			"role":    "PRODUCER",
			"name":    "João",
		})
		return c.Next()
	})
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "joao@example.com", user["email"])
}

func TestLogout_RemovesSession(t *testing.T) {
	u, p := testUserAndProfile()
	h, rdb := setupAuthHandlers(t, &fakeUserFinder{user: u, profile: p})
	app := fiber.New()
	sessionID := uuid.New().String()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": u.UserID.String()})
		c.Locals("session_id", sessionID)
		return c.Next()
	})
	app.Delete("/logout", h.Logout)

	require.NoError(t, rdb.Set(context.Background(), middleware.SessionRedisPrefix+sessionID, "{}", 0).Err())
	require.NoError(t, rdb.SAdd(context.Background(), "user_sessions:"+u.UserID.String(), sessionID).Err())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	n, err := rdb.Exists(context.Background(), middleware.SessionRedisPrefix+sessionID).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	members, err := rdb.SMembers(context.Background(), "user_sessions:"+u.UserID.String()).Result()
	require.NoError(t, err)
	assert.Empty(t, members)

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "galo.sid=")
}

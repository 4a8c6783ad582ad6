package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"anilhas-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

type badPinger struct{}

func (badPinger) Ping() error { return errors.New("connection refused") }

func setupHealthTest(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestJSON_AllConnected(t *testing.T) {
	rdb := setupHealthTest(t)
	require.NoError(t, rdb.Set(context.Background(), middleware.KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(context.Background(), middleware.KeyReqErrors, "2", 0).Err())

	h := &Handlers{Rdb: rdb, DB: okPinger{}}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "anilhas-api", out["service"])
	assert.Equal(t, "ok", out["status"])

	traffic, _ := out["traffic"].(map[string]interface{})
	require.NotNil(t, traffic)
	assert.Equal(t, float64(10), traffic["totalRequests"])
	assert.Equal(t, float64(8), traffic["successCount"])
	assert.Equal(t, "80.0", traffic["successRate"])
}

func TestJSON_DatabaseDown(t *testing.T) {
	rdb := setupHealthTest(t)
	h := &Handlers{Rdb: rdb, DB: badPinger{}}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "issue", out["status"])

	deps, _ := out["dependencies"].(map[string]interface{})
	require.NotNil(t, deps)
	database, _ := deps["database"].(map[string]interface{})
	require.NotNil(t, database)
	assert.Equal(t, "error", database["status"])
}

func TestReset_RequiresKey(t *testing.T) {
	rdb := setupHealthTest(t)
	h := &Handlers{Rdb: rdb, DB: okPinger{}, HealthAdminKey: "sekret"}
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReset_ClearsStats(t *testing.T) {
	rdb := setupHealthTest(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, "99", 0).Err())

	h := &Handlers{Rdb: rdb, DB: okPinger{}, HealthAdminKey: "sekret"}
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=sekret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	n, err := rdb.Exists(ctx, middleware.KeyReqTotal).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

package health

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct {
	err error
}

func (p pinger) Ping() error { return p.err }

func newHealthApp(h *Handlers) *fiber.App {
	app := fiber.New()
	app.Get("/api/health", h.Status)
	app.Get("/health/json", h.JSON)
	return app
}

func TestStatus(t *testing.T) {
	app := newHealthApp(&Handlers{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "OK", result["status"])
}

func TestJSON_AllConnected(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	app := newHealthApp(&Handlers{DB: pinger{}, Rdb: rdb})

	req := httptest.NewRequest("GET", "/health/json", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Status       string               `json:"status"`
		Dependencies map[string]DepStatus `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "OK", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
}

func TestJSON_DatabaseError(t *testing.T) {
	app := newHealthApp(&Handlers{DB: pinger{err: errors.New("connection refused")}})

	req := httptest.NewRequest("GET", "/health/json", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var result struct {
		Status       string               `json:"status"`
		Dependencies map[string]DepStatus `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "DEGRADED", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
}

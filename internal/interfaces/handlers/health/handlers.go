package health

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the dependency report. Nil reports the database as
// disconnected.
type DBPinger interface {
	Ping() error
}

type Handlers struct {
	DB  DBPinger
	Rdb *redis.Client
}

// DepStatus is one dependency entry in the /health/json report.
type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// GET /api/health — liveness probe used by the frontend and the keepalive job
func (h *Handlers) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}

// GET /health/json — dependency health with ping timings
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := map[string]DepStatus{}

	dbStatus := "disconnected"
	var dbPing interface{}
	if h.DB != nil {
		start := time.Now()
		if err := h.DB.Ping(); err == nil {
			dbStatus = "connected"
			dbPing = time.Since(start).Milliseconds()
		} else {
			dbStatus = "error"
		}
	}
	deps["database"] = DepStatus{Status: dbStatus, PingMs: dbPing}

	redisStatus := "disconnected"
	var redisPing interface{}
	if h.Rdb != nil {
		start := time.Now()
		if err := h.Rdb.Ping(c.Context()).Err(); err == nil {
			redisStatus = "connected"
			redisPing = time.Since(start).Milliseconds()
		} else {
			redisStatus = "error"
		}
	}
	deps["redis"] = DepStatus{Status: redisStatus, PingMs: redisPing}

	status := "OK"
	if dbStatus == "error" {
		status = "DEGRADED"
	}
	return c.JSON(fiber.Map{"status": status, "dependencies": deps})
}

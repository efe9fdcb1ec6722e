package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Pinger lo cumple *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler verifica PostgreSQL y, si está configurado, Redis.
type HealthHandler struct {
	db  Pinger
	rdb *redis.Client
}

// NewHealthHandler construye el handler. rdb puede ser nil (ajustes pendientes en memoria).
func NewHealthHandler(db Pinger, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	dbStatus := "connected"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "error"
	}
	redisStatus := "disabled"
	if h.rdb != nil {
		redisStatus = "connected"
		if h.rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}
	}

	status := fiber.StatusOK
	if dbStatus == "error" || redisStatus == "error" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"ok":    status == fiber.StatusOK,
		"db":    dbStatus,
		"redis": redisStatus,
	})
}

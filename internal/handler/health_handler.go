package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	redis    Pinger
}

// NewHealthHandler takes an optional redis pinger; nil reports "disabled".
func NewHealthHandler(database Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	body := gin.H{"status": "healthy", "database": "connected", "redis": "disabled"}

	if err := h.database.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "disconnected"
	}

	if h.redis != nil {
		body["redis"] = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			slog.Error("redis health check failed", "error", err)
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["redis"] = "disconnected"
		}
	}

	c.JSON(status, body)
}

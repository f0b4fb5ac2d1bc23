package handlers

import (
	"time"

	"orderplan-go-api/internal/forecast"
	"orderplan-go-api/internal/models"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	startTime     time.Time
	mirrorEnabled bool
}

func NewHealthHandler(mirrorEnabled bool) *HealthHandler {
	return &HealthHandler{
		startTime:     time.Now(),
		mirrorEnabled: mirrorEnabled,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "orderplan-go-api",
		"version": Version,
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// Ready handles GET /health/ready
//
// The engine check runs a default projection and verifies its shape.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	state, engine, status := "ready", "ok", fiber.StatusOK
	if out := forecast.Forecast(models.DefaultParameters(), nil); len(out) != forecast.Horizon {
		state, engine, status = "degraded", "failed", fiber.StatusServiceUnavailable
	}

	mirror := "disabled"
	if h.mirrorEnabled {
		mirror = "ok"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": fiber.Map{
			"api":       "ok",
			"engine":    engine,
			"firestore": mirror,
		},
	})
}

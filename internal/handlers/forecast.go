package handlers

import (
	"time"

	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ForecastHandler struct {
	orchestrator *services.PlanningOrchestrator
}

func NewForecastHandler(orchestrator *services.PlanningOrchestrator) *ForecastHandler {
	return &ForecastHandler{
		orchestrator: orchestrator,
	}
}

// GetForecast handles POST /v1/forecast
//
// Runs the engine on the given parameters and anchor without touching the
// dashboard state. Missing parameters mean the current ones.
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	var req models.ForecastRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body", err)
		}
	}

	params := h.orchestrator.Parameters()
	if req.Parameters != nil {
		params = *req.Parameters
	}

	result, hit := h.orchestrator.Forecast(params, req.Anchor)
	return c.JSON(models.ForecastResponse{
		Forecast:    result,
		GeneratedAt: time.Now(),
		CacheHit:    hit,
	})
}

// GetDashboard handles GET /v1/dashboard
func (h *ForecastHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(h.orchestrator.Dashboard())
}

// GetYearOverYear handles GET /v1/analysis/yoy
func (h *ForecastHandler) GetYearOverYear(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"points": h.orchestrator.YearOverYear(),
	})
}

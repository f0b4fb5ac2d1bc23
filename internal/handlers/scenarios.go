package handlers

import (
	"context"
	"time"

	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ScenarioHandler struct {
	orchestrator *services.PlanningOrchestrator
}

func NewScenarioHandler(orchestrator *services.PlanningOrchestrator) *ScenarioHandler {
	return &ScenarioHandler{orchestrator: orchestrator}
}

// List handles GET /v1/scenarios
func (h *ScenarioHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"scenarios": h.orchestrator.Scenarios(),
	})
}

// Save handles POST /v1/scenarios
func (h *ScenarioHandler) Save(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req models.SaveScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	sc, err := h.orchestrator.SaveScenario(ctx, req.Name, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sc)
}

// Delete handles DELETE /v1/scenarios/:name
func (h *ScenarioHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.orchestrator.DeleteScenario(ctx, c.Params("name")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apply handles POST /v1/scenarios/:name/apply
func (h *ScenarioHandler) Apply(c *fiber.Ctx) error {
	sc, err := h.orchestrator.ApplyScenario(c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"scenario":   sc.Name,
		"parameters": sc.Parameters,
	})
}

// Compare handles GET /v1/scenarios/compare
func (h *ScenarioHandler) Compare(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"comparisons": h.orchestrator.CompareScenarios(),
	})
}

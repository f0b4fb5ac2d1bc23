package handlers

import (
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ParametersHandler struct {
	orchestrator *services.PlanningOrchestrator
}

func NewParametersHandler(orchestrator *services.PlanningOrchestrator) *ParametersHandler {
	return &ParametersHandler{orchestrator: orchestrator}
}

// Get handles GET /v1/parameters
func (h *ParametersHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.orchestrator.Parameters())
}

// GetOne handles GET /v1/parameters/:key
func (h *ParametersHandler) GetOne(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.orchestrator.Parameters().Get(key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"key":   key,
		"value": value,
	})
}

// Controls handles GET /v1/parameters/controls
func (h *ParametersHandler) Controls(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"controls": models.ParameterControls(),
	})
}

// Replace handles PUT /v1/parameters
func (h *ParametersHandler) Replace(c *fiber.Ctx) error {
	params := models.DefaultParameters()
	if err := c.BodyParser(&params); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	h.orchestrator.SetParameters(params)
	return c.JSON(params)
}

// Update handles PATCH /v1/parameters/:key
func (h *ParametersHandler) Update(c *fiber.Ctx) error {
	var req models.ParameterUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if req.Value == nil {
		return badRequest(c, "Value is required", nil)
	}

	params, err := h.orchestrator.SetParameter(c.Params("key"), *req.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(params)
}

// Reset handles POST /v1/parameters/reset
func (h *ParametersHandler) Reset(c *fiber.Ctx) error {
	return c.JSON(h.orchestrator.ResetParameters())
}

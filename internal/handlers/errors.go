package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orderplan-go-api/internal/csvio"
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrDuplicateScenario):
		return fiber.StatusConflict, "Scenario already exists"
	case errors.Is(err, services.ErrBuiltinScenario):
		return fiber.StatusForbidden, "Scenario cannot be deleted"
	case errors.Is(err, services.ErrScenarioNotFound):
		return fiber.StatusNotFound, "Scenario not found"
	case errors.Is(err, services.ErrScenarioNameRequired):
		return fiber.StatusBadRequest, "Scenario name is required"
	case errors.Is(err, models.ErrUnknownParameter):
		return fiber.StatusBadRequest, "Unknown parameter"
	case errors.Is(err, csvio.ErrNoData):
		return fiber.StatusUnprocessableEntity, "Failed to parse CSV file"
	}
	return fiber.StatusInternalServerError, "Request failed"
}

func writeError(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	return c.Status(code).JSON(models.ErrorResponse{
		Error:   msg,
		Message: err.Error(),
		Code:    code,
	})
}

func badRequest(c *fiber.Ctx, msg string, err error) error {
	resp := models.ErrorResponse{Error: msg, Code: fiber.StatusBadRequest}
	if err != nil {
		resp.Message = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}

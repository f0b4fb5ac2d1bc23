package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"orderplan-go-api/internal/config"
	"orderplan-go-api/internal/services"
)

const Version = "1.0.0"

// NewApp builds the Fiber app with middleware and routes.
func NewApp(cfg *config.Config, orchestrator *services.PlanningOrchestrator, mirrorEnabled bool) *fiber.App {
	forecastHandler := NewForecastHandler(orchestrator)
	parametersHandler := NewParametersHandler(orchestrator)
	scenarioHandler := NewScenarioHandler(orchestrator)
	dataHandler := NewDataHandler(orchestrator)
	healthHandler := NewHealthHandler(mirrorEnabled)

	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,
		ServerHeader:  "OrderPlan-API",
		AppName:       "OrderPlan v" + Version,
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		BodyLimit:     cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler:  CustomErrorHandler,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "OrderPlan API",
			"version": Version,
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	// API v1 routes
	v1 := app.Group("/v1")

	v1.Get("/parameters", parametersHandler.Get)
	v1.Put("/parameters", parametersHandler.Replace)
	v1.Get("/parameters/controls", parametersHandler.Controls)
	v1.Post("/parameters/reset", parametersHandler.Reset)
	v1.Get("/parameters/:key", parametersHandler.GetOne)
	v1.Patch("/parameters/:key", parametersHandler.Update)

	v1.Post("/forecast", forecastHandler.GetForecast)
	v1.Get("/dashboard", forecastHandler.GetDashboard)
	v1.Get("/analysis/yoy", forecastHandler.GetYearOverYear)

	v1.Get("/scenarios", scenarioHandler.List)
	v1.Post("/scenarios", scenarioHandler.Save)
	v1.Get("/scenarios/compare", scenarioHandler.Compare)
	v1.Delete("/scenarios/:name", scenarioHandler.Delete)
	v1.Post("/scenarios/:name/apply", scenarioHandler.Apply)

	v1.Post("/data/import", dataHandler.Import)
	v1.Get("/data/export", dataHandler.Export)
	v1.Get("/data/table", dataHandler.Table)
	v1.Get("/data/history", dataHandler.History)

	return app
}

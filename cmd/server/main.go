package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderplan-go-api/internal/config"
	"orderplan-go-api/internal/handlers"
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Scenario presets
	builtin := models.PredefinedScenarios()
	if cfg.ScenariosFile != "" {
		presets, err := services.LoadPresets(cfg.ScenariosFile)
		if err != nil {
			log.Fatalf("Failed to load scenario presets: %v", err)
		}
		builtin = presets
		log.Printf("📂 Loaded %d scenario presets from %s", len(presets), cfg.ScenariosFile)
	}

	// Optional Firestore mirror for saved scenarios
	var mirror services.ScenarioMirror
	mirrorEnabled := false
	if cfg.FirestoreProject != "" {
		fm, err := services.NewFirestoreMirror(context.Background(), cfg.FirestoreProject)
		if err != nil {
			log.Printf("⚠️  Firestore mirror unavailable: %v", err)
		} else {
			defer fm.Close()
			mirror = fm
			mirrorEnabled = true
		}
	}

	// Initialize services
	forecastCache := services.NewForecastCache(cfg)
	defer forecastCache.Close()
	scenarioStore := services.NewScenarioStore(builtin, mirror)
	orchestrator := services.NewPlanningOrchestrator(forecastCache, scenarioStore)

	app := handlers.NewApp(cfg, orchestrator, mirrorEnabled)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("🚀 OrderPlan API started on port %s", cfg.Port)
	log.Printf("📊 Environment: %s", cfg.Environment)
	log.Printf("🗂  Scenarios: %d", len(scenarioStore.List()))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}

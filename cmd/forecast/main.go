package main

import (
	"flag"
	"log"
	"os"

	"orderplan-go-api/internal/config"
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	in := flag.String("in", "", "CSV of actual quarters (default: built-in 2023 history)")
	scenario := flag.String("scenario", "", "scenario to apply before forecasting (e.g. \"Optimistic Growth\")")
	presets := flag.String("presets", os.Getenv("SCENARIOS_FILE"), "YAML file of scenario presets")
	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	builtin := models.PredefinedScenarios()
	if *presets != "" {
		if builtin, err = services.LoadPresets(*presets); err != nil {
			log.Fatalf("presets: %v", err)
		}
	}

	cache := services.NewForecastCache(cfg)
	defer cache.Close()
	orchestrator := services.NewPlanningOrchestrator(cache, services.NewScenarioStore(builtin, nil))

	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("open %s: %v", *in, err)
		}
		res, err := orchestrator.ImportCSV(f)
		f.Close()
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		log.Printf("[INFO] loaded=%d skipped=%d", len(res.Records), res.Skipped)
	}

	if *scenario != "" {
		sc, err := orchestrator.ApplyScenario(*scenario)
		if err != nil {
			log.Fatalf("scenario: %v", err)
		}
		log.Printf("[INFO] scenario=%q", sc.Name)
	}

	if err := orchestrator.ExportCSV(os.Stdout); err != nil {
		log.Fatalf("export: %v", err)
	}
}

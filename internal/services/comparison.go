package services

import (
	"runtime"
	"sync"

	"orderplan-go-api/internal/models"
)

// scenarioRunner projects many scenarios from one anchor with bounded concurrency
type scenarioRunner struct {
	cache      *ForecastCache
	workerPool chan struct{} // Semaphore for bounded concurrency
}

func newScenarioRunner(cache *ForecastCache, workers int) *scenarioRunner {
	if workers < 1 {
		workers = 1
	}
	return &scenarioRunner{
		cache:      cache,
		workerPool: make(chan struct{}, workers),
	}
}

type indexedForecast struct {
	index  int
	result models.ScenarioForecast
}

// Run projects every scenario. Output order matches the input order.
func (r *scenarioRunner) Run(scenarios []models.Scenario, anchor *models.QuarterlyRecord) []models.ScenarioForecast {
	var wg sync.WaitGroup
	resultCh := make(chan indexedForecast, len(scenarios))

	for i, sc := range scenarios {
		wg.Add(1)

		go func(i int, sc models.Scenario) {
			defer wg.Done()

			// Acquire worker slot
			r.workerPool <- struct{}{}
			defer func() { <-r.workerPool }()

			projected, _ := r.cache.Forecast(sc.Parameters, anchor)
			total := 0
			for _, q := range projected {
				total += q.Total
			}
			resultCh <- indexedForecast{
				index:  i,
				result: models.ScenarioForecast{Scenario: sc, Forecast: projected, Total: total},
			}
		}(i, sc)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make([]models.ScenarioForecast, len(scenarios))
	for res := range resultCh {
		out[res.index] = res.result
	}
	return out
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

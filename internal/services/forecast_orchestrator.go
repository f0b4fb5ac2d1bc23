package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"orderplan-go-api/internal/csvio"
	"orderplan-go-api/internal/forecast"
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/table"
)

// PlanningOrchestrator owns the dashboard state: the current parameters, the
// historical quarters and the scenario store. Forecasts are never stored;
// they are recomputed (or served from the memo cache) on every read.
type PlanningOrchestrator struct {
	mu        sync.RWMutex
	params    models.SimulationParameters
	history   []models.QuarterlyRecord
	scenarios *ScenarioStore
	cache     *ForecastCache
	runner    *scenarioRunner
}

func NewPlanningOrchestrator(cache *ForecastCache, scenarios *ScenarioStore) *PlanningOrchestrator {
	return &PlanningOrchestrator{
		params:    models.DefaultParameters(),
		history:   models.SeedHistory(),
		scenarios: scenarios,
		cache:     cache,
		runner:    newScenarioRunner(cache, defaultWorkers()),
	}
}

// Parameters returns the current parameter set.
func (o *PlanningOrchestrator) Parameters() models.SimulationParameters {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.params
}

// SetParameters replaces the current parameter set.
func (o *PlanningOrchestrator) SetParameters(p models.SimulationParameters) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.params = p
}

// SetParameter updates a single parameter by key.
func (o *PlanningOrchestrator) SetParameter(key string, value float64) (models.SimulationParameters, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, err := o.params.With(key, value)
	if err != nil {
		return o.params, err
	}
	o.params = p
	return p, nil
}

// ResetParameters restores the defaults.
func (o *PlanningOrchestrator) ResetParameters() models.SimulationParameters {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.params = models.DefaultParameters()
	return o.params
}

// Scenarios lists stored scenarios.
func (o *PlanningOrchestrator) Scenarios() []models.Scenario {
	return o.scenarios.List()
}

// ApplyScenario makes a scenario's parameters current.
func (o *PlanningOrchestrator) ApplyScenario(name string) (models.Scenario, error) {
	sc, err := o.scenarios.Get(name)
	if err != nil {
		return models.Scenario{}, err
	}
	o.SetParameters(sc.Parameters)
	return sc, nil
}

// SaveScenario stores the current parameters under a new name.
func (o *PlanningOrchestrator) SaveScenario(ctx context.Context, name, description string) (models.Scenario, error) {
	return o.scenarios.Save(ctx, name, description, o.Parameters())
}

// DeleteScenario removes a custom scenario.
func (o *PlanningOrchestrator) DeleteScenario(ctx context.Context, name string) error {
	return o.scenarios.Delete(ctx, name)
}

// Forecast runs the engine through the memo cache.
func (o *PlanningOrchestrator) Forecast(params models.SimulationParameters, anchor *models.QuarterlyRecord) ([]models.QuarterlyRecord, bool) {
	return o.cache.Forecast(params, anchor)
}

// snapshot returns copies of the state a forecast depends on.
func (o *PlanningOrchestrator) snapshot() (models.SimulationParameters, []models.QuarterlyRecord) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.params, models.CloneRecords(o.history)
}

func lastOf(history []models.QuarterlyRecord) *models.QuarterlyRecord {
	if len(history) == 0 {
		return nil
	}
	last := history[len(history)-1]
	return &last
}

// FullData returns the history followed by the forecast anchored on its last quarter.
func (o *PlanningOrchestrator) FullData() []models.QuarterlyRecord {
	params, history := o.snapshot()
	projected, _ := o.cache.Forecast(params, lastOf(history))
	return append(history, projected...)
}

// Dashboard builds the main view: full data, headline cards and current parameters.
func (o *PlanningOrchestrator) Dashboard() models.DashboardResponse {
	params, history := o.snapshot()
	anchor := lastOf(history)
	projected, _ := o.cache.Forecast(params, anchor)

	return models.DashboardResponse{
		Parameters: params,
		Data:       append(history, projected...),
		Summary:    forecast.Summarize(anchor, projected),
	}
}

// CompareScenarios projects every stored scenario from the current history.
func (o *PlanningOrchestrator) CompareScenarios() []models.ScenarioForecast {
	_, history := o.snapshot()
	return o.runner.Run(o.scenarios.List(), lastOf(history))
}

// YearOverYear compares each quarter of the full data with a year earlier.
func (o *PlanningOrchestrator) YearOverYear() []models.YearOverYearPoint {
	return forecast.YearOverYear(o.FullData())
}

// Table formats the full data for the data table view.
func (o *PlanningOrchestrator) Table() []table.Row {
	return table.Format(o.FullData())
}

// ImportCSV replaces the history with the actual rows read from r. The
// history is left untouched when no row could be loaded. Memoized forecasts
// are dropped since their anchors belong to the old history.
func (o *PlanningOrchestrator) ImportCSV(r io.Reader) (csvio.Result, error) {
	res, err := csvio.Import(r)
	if err != nil {
		return res, err
	}
	if len(res.Records) == 0 {
		return res, fmt.Errorf("%w: all %d rows skipped", csvio.ErrNoData, res.Skipped)
	}

	o.mu.Lock()
	o.history = models.CloneRecords(res.Records)
	o.mu.Unlock()
	o.cache.Purge()
	return res, nil
}

// ExportCSV writes history and forecast as CSV.
func (o *PlanningOrchestrator) ExportCSV(w io.Writer) error {
	return csvio.Export(w, o.FullData())
}

// History returns a copy of the historical quarters.
func (o *PlanningOrchestrator) History() []models.QuarterlyRecord {
	_, history := o.snapshot()
	return history
}

package models

import "time"

// ForecastRequest represents a stateless engine call
type ForecastRequest struct {
	Parameters *SimulationParameters `json:"parameters"`
	Anchor     *QuarterlyRecord      `json:"anchor,omitempty"`
}

// ForecastResponse represents the engine output for a request
type ForecastResponse struct {
	Forecast    []QuarterlyRecord `json:"forecast"`
	GeneratedAt time.Time         `json:"generatedAt"`
	CacheHit    bool              `json:"cacheHit"`
}

// SegmentStat is one headline card: a first-forecast value and its growth vs the last actual
type SegmentStat struct {
	Value  int     `json:"value"`
	Growth float64 `json:"growth"`
}

// Summary represents the headline cards for the first forecast quarter
type Summary struct {
	Quarter   string      `json:"quarter"`
	Total     SegmentStat `json:"total"`
	NewDirect SegmentStat `json:"newDirect"`
	OldDirect SegmentStat `json:"oldDirect"`
	OldMeta   SegmentStat `json:"oldMeta"`
}

// DashboardResponse represents the full history + forecast view
type DashboardResponse struct {
	Parameters SimulationParameters `json:"parameters"`
	Data       []QuarterlyRecord    `json:"data"`
	Summary    Summary              `json:"summary"`
}

// YearOverYearPoint represents growth of one quarter vs the same quarter a year earlier
type YearOverYearPoint struct {
	Quarter string  `json:"quarter"`
	Growth  float64 `json:"growth"`
	Volume  int     `json:"volume"`
}

// ScenarioForecast pairs a scenario with its projected quarters
type ScenarioForecast struct {
	Scenario Scenario          `json:"scenario"`
	Forecast []QuarterlyRecord `json:"forecast"`
	Total    int               `json:"total"` // sum over the horizon
}

// SaveScenarioRequest represents a save-as of the current parameters
type SaveScenarioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParameterUpdate represents a single slider movement
type ParameterUpdate struct {
	Value *float64 `json:"value"`
}

// ImportResponse reports how many rows a CSV import loaded
type ImportResponse struct {
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

package models

import "time"

const CustomScenarioColor = "#14b8a6"

// Scenario represents a named snapshot of simulation parameters
type Scenario struct {
	ID          string               `json:"id" firestore:"id" yaml:"id"`
	Name        string               `json:"name" firestore:"name" yaml:"name"`
	Description string               `json:"description" firestore:"description" yaml:"description"`
	Parameters  SimulationParameters `json:"parameters" firestore:"parameters" yaml:"parameters"`
	Color       string               `json:"color" firestore:"color" yaml:"color"`
	IsCustom    bool                 `json:"isCustom" firestore:"isCustom" yaml:"isCustom"`
	CreatedAt   time.Time            `json:"createdAt" firestore:"createdAt" yaml:"-"`
}

// PredefinedScenarios returns the built-in scenarios.
func PredefinedScenarios() []Scenario {
	base := DefaultParameters()

	seasonal := base
	seasonal.SeasonalityQ1 = 0.85
	seasonal.SeasonalityQ2 = 1.10
	seasonal.SeasonalityQ3 = 1.05
	seasonal.SeasonalityQ4 = 1.20

	optimistic := base
	optimistic.NewUsersQuarterlyGrowth = 25
	optimistic.NewUsersAvgOrders = 1.45
	optimistic.OldDirectUserRepurchaseDirectPercent = 55

	conservative := base
	conservative.NewUsersQuarterlyGrowth = 10
	conservative.OldDirectRepurchaseRate = 12
	conservative.OldDirectUserRepurchaseDirectPercent = 45

	return []Scenario{
		{ID: "base-case", Name: "Base Case", Description: "Current parameters based on historic trends.", Color: "#3b82f6", Parameters: base},
		{ID: "seasonality-adjusted", Name: "Seasonality Adjusted", Description: "Models a typical Q1 dip and Q2/Q4 peaks.", Color: "#8b5cf6", Parameters: seasonal},
		{ID: "optimistic-growth", Name: "Optimistic Growth", Description: "Assumes +10% new user acquisition and improved retention.", Color: "#10b981", Parameters: optimistic},
		{ID: "conservative", Name: "Conservative", Description: "Market downturn simulation (-5% growth, lower avg orders).", Color: "#ef4444", Parameters: conservative},
	}
}

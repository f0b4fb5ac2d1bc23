package models

import (
	"errors"
	"fmt"
)

var ErrUnknownParameter = errors.New("unknown parameter")

// SimulationParameters represents the tunable inputs of the forecast engine.
// Rates are percentages; growth may be negative or exceed 100. Nothing here is
// clamped, extreme values are a legitimate what-if.
type SimulationParameters struct {
	NewUsersQuarterlyGrowth float64 `json:"newUIDsQuarterlyGrowth" yaml:"newUIDsQuarterlyGrowth"`
	NewUsersAvgOrders       float64 `json:"newUIDsAvgOrders" yaml:"newUIDsAvgOrders"`

	OldDirectRepurchaseRate float64 `json:"oldDirectRepurchaseRate" yaml:"oldDirectRepurchaseRate"`
	OldDirectAvgOrders      float64 `json:"oldDirectAvgOrders" yaml:"oldDirectAvgOrders"`
	OldMetaRepurchaseRate   float64 `json:"oldMetaRepurchaseRate" yaml:"oldMetaRepurchaseRate"`
	OldMetaAvgOrders        float64 `json:"oldMetaAvgOrders" yaml:"oldMetaAvgOrders"`

	// Share of each old segment's reactivated orders landing in the direct
	// channel; the meta channel gets 100 minus this.
	OldDirectUserRepurchaseDirectPercent float64 `json:"oldDirectUserRepurchaseDirectPercent" yaml:"oldDirectUserRepurchaseDirectPercent"`
	OldMetaUserRepurchaseDirectPercent   float64 `json:"oldMetaUserRepurchaseDirectPercent" yaml:"oldMetaUserRepurchaseDirectPercent"`

	// Seasonality multipliers per calendar quarter. They travel with scenarios
	// and sliders but the engine does not read them.
	SeasonalityQ1 float64 `json:"seasonalityQ1" yaml:"seasonalityQ1"`
	SeasonalityQ2 float64 `json:"seasonalityQ2" yaml:"seasonalityQ2"`
	SeasonalityQ3 float64 `json:"seasonalityQ3" yaml:"seasonalityQ3"`
	SeasonalityQ4 float64 `json:"seasonalityQ4" yaml:"seasonalityQ4"`
}

// ParameterControl describes the interactive range offered for one parameter.
type ParameterControl struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Group  string  `json:"group"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Step   float64 `json:"step"`
	Suffix string  `json:"suffix,omitempty"`
}

// ParameterControls lists every tunable parameter with its slider range.
// The ranges are UI affordances only; the engine accepts any value.
func ParameterControls() []ParameterControl {
	return []ParameterControl{
		{Key: "newUIDsQuarterlyGrowth", Label: "Quarterly UID Growth", Group: "New User Acquisition", Min: -20, Max: 50, Step: 0.5, Suffix: "%"},
		{Key: "newUIDsAvgOrders", Label: "Avg Orders per New User", Group: "New User Acquisition", Min: 1, Max: 3, Step: 0.01},
		{Key: "oldDirectRepurchaseRate", Label: "Repurchase Rate", Group: "Old Direct User Retention", Min: 0, Max: 50, Step: 0.5, Suffix: "%"},
		{Key: "oldDirectAvgOrders", Label: "Avg Orders (if active)", Group: "Old Direct User Retention", Min: 0.5, Max: 2, Step: 0.05},
		{Key: "oldDirectUserRepurchaseDirectPercent", Label: "Channel Share: Direct", Group: "Old Direct User Retention", Min: 0, Max: 100, Step: 1, Suffix: "%"},
		{Key: "oldMetaRepurchaseRate", Label: "Repurchase Rate", Group: "Old Meta User Retention", Min: 0, Max: 50, Step: 0.5, Suffix: "%"},
		{Key: "oldMetaAvgOrders", Label: "Avg Orders (if active)", Group: "Old Meta User Retention", Min: 0.5, Max: 2, Step: 0.05},
		{Key: "oldMetaUserRepurchaseDirectPercent", Label: "Channel Share: Direct", Group: "Old Meta User Retention", Min: 0, Max: 100, Step: 1, Suffix: "%"},
		{Key: "seasonalityQ1", Label: "Q1 Multiplier", Group: "Seasonality", Min: 0.5, Max: 1.5, Step: 0.05, Suffix: "x"},
		{Key: "seasonalityQ2", Label: "Q2 Multiplier", Group: "Seasonality", Min: 0.5, Max: 1.5, Step: 0.05, Suffix: "x"},
		{Key: "seasonalityQ3", Label: "Q3 Multiplier", Group: "Seasonality", Min: 0.5, Max: 1.5, Step: 0.05, Suffix: "x"},
		{Key: "seasonalityQ4", Label: "Q4 Multiplier", Group: "Seasonality", Min: 0.5, Max: 1.5, Step: 0.05, Suffix: "x"},
	}
}

func (p *SimulationParameters) field(key string) (*float64, error) {
	switch key {
	case "newUIDsQuarterlyGrowth":
		return &p.NewUsersQuarterlyGrowth, nil
	case "newUIDsAvgOrders":
		return &p.NewUsersAvgOrders, nil
	case "oldDirectRepurchaseRate":
		return &p.OldDirectRepurchaseRate, nil
	case "oldDirectAvgOrders":
		return &p.OldDirectAvgOrders, nil
	case "oldMetaRepurchaseRate":
		return &p.OldMetaRepurchaseRate, nil
	case "oldMetaAvgOrders":
		return &p.OldMetaAvgOrders, nil
	case "oldDirectUserRepurchaseDirectPercent":
		return &p.OldDirectUserRepurchaseDirectPercent, nil
	case "oldMetaUserRepurchaseDirectPercent":
		return &p.OldMetaUserRepurchaseDirectPercent, nil
	case "seasonalityQ1":
		return &p.SeasonalityQ1, nil
	case "seasonalityQ2":
		return &p.SeasonalityQ2, nil
	case "seasonalityQ3":
		return &p.SeasonalityQ3, nil
	case "seasonalityQ4":
		return &p.SeasonalityQ4, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
}

// Get returns the value of the parameter with the given JSON key.
func (p SimulationParameters) Get(key string) (float64, error) {
	f, err := p.field(key)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// With returns a copy of p with one parameter replaced.
func (p SimulationParameters) With(key string, value float64) (SimulationParameters, error) {
	f, err := p.field(key)
	if err != nil {
		return p, err
	}
	*f = value
	return p, nil
}

package models

// Population holds user population estimates for the three segments.
type Population struct {
	NewUsers       float64 `json:"newUsers"`
	OldDirectUsers float64 `json:"oldDirectUsers"`
	OldMetaUsers   float64 `json:"oldMetaUsers"`
}

const (
	baselineNewUsers       = 51519
	baselineOldDirectUsers = 748420
	baselineOldMetaUsers   = 862570
)

// BaselinePopulation returns the population estimate as of the last seeded
// quarter (2023 Q4).
func BaselinePopulation() Population {
	return Population{
		NewUsers:       baselineNewUsers,
		OldDirectUsers: baselineOldDirectUsers,
		OldMetaUsers:   baselineOldMetaUsers,
	}
}

// DefaultParameters returns the baseline parameter set. It also anchors calibration.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		NewUsersQuarterlyGrowth:              15.00,
		NewUsersAvgOrders:                    1.34,
		OldDirectRepurchaseRate:              15.00,
		OldDirectAvgOrders:                   1.00,
		OldMetaRepurchaseRate:                10.00,
		OldMetaAvgOrders:                     0.80,
		OldDirectUserRepurchaseDirectPercent: 51.00,
		OldMetaUserRepurchaseDirectPercent:   53.00,
		SeasonalityQ1:                        1.0,
		SeasonalityQ2:                        1.0,
		SeasonalityQ3:                        1.0,
		SeasonalityQ4:                        1.0,
	}
}

// SeedHistory returns the 2023 actuals the dashboard starts with.
func SeedHistory() []QuarterlyRecord {
	row := func(q string, nd, od, om, total int, np, odp, omp, qoq, nod, nom float64) QuarterlyRecord {
		return QuarterlyRecord{
			Quarter:            q,
			NewDirect:          nd,
			OldDirect:          od,
			OldMeta:            om,
			Total:              total,
			NewPercent:         Float(np),
			OldDirectPercent:   Float(odp),
			OldMetaPercent:     Float(omp),
			QoQGrowth:          Float(qoq),
			Type:               TypeActual,
			NewOfDirectPercent: Float(nod),
			NewOfMetaPercent:   Float(nom),
		}
	}
	return []QuarterlyRecord{
		row("2023 Q1", 20323, 11399, 7930, 39652, 51.25, 28.75, 20.00, 0, 64.08, 71.93),
		row("2023 Q2", 39851, 19189, 16652, 75692, 52.65, 25.35, 22.00, 90.89, 67.50, 70.53),
		row("2023 Q3", 48758, 24796, 24518, 98072, 49.72, 25.28, 25.00, 29.57, 66.29, 66.54),
		row("2023 Q4", 69138, 26438, 37168, 132744, 52.08, 19.92, 28.00, 35.35, 72.33, 65.04),
	}
}

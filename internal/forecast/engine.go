// Package forecast projects quarterly order volume for the three customer
// segments from a parameter set and an optional anchor quarter.
//
// Forecast is a pure function: every call rebuilds the population pools from
// the baseline constants and the anchor it is given, so it is safe to call on
// every parameter change and from any goroutine.
package forecast

import (
	"math"
	"regexp"
	"strconv"

	"orderplan-go-api/internal/models"
)

// Horizon is the number of quarters projected per call.
const Horizon = 4

const (
	fallbackYear    = 2023
	fallbackQuarter = 4
)

var quarterLabel = regexp.MustCompile(`(\d{4})\s*Q(\d)`)

// state is carried from one projected quarter to the next.
type state struct {
	poolOldDirect float64
	poolOldMeta   float64
	lastNew       float64
	lastTotal     int
	year          int
	quarter       int
}

// Forecast returns Horizon forecast quarters following anchor. When anchor is
// nil the projection continues from the seeded 2023 history with the baseline
// populations.
func Forecast(params models.SimulationParameters, anchor *models.QuarterlyRecord) []models.QuarterlyRecord {
	s := calibrate(models.DefaultParameters(), anchor)

	out := make([]models.QuarterlyRecord, 0, Horizon)
	for i := 0; i < Horizon; i++ {
		var rec models.QuarterlyRecord
		rec, s = step(s, params)
		out = append(out, rec)
	}
	return out
}

// calibrate derives the starting state. Population estimates are inferred
// from the anchor with defaults, never with the scenario under test, so
// changing a scenario shifts behaviour and not the implied history.
func calibrate(defaults models.SimulationParameters, anchor *models.QuarterlyRecord) state {
	base := models.BaselinePopulation()
	seed := models.SeedHistory()
	last := seed[len(seed)-1]

	s := state{
		poolOldDirect: base.OldDirectUsers,
		poolOldMeta:   base.OldMetaUsers,
		lastNew:       base.NewUsers,
		lastTotal:     last.Total,
	}
	label := last.Quarter

	if anchor != nil {
		s.lastTotal = anchor.SegmentSum()
		label = anchor.Quarter

		if defaults.NewUsersAvgOrders > 0 && anchor.NewDirect > 0 {
			s.lastNew = float64(anchor.NewDirect) / defaults.NewUsersAvgOrders
		}

		modelOld := ModelOldVolume(base, defaults)
		actualOld := float64(anchor.OldDirect + anchor.OldMeta)
		if modelOld > 0 && actualOld > 0 {
			scale := actualOld / modelOld
			s.poolOldDirect = base.OldDirectUsers * scale
			s.poolOldMeta = base.OldMetaUsers * scale
		}
	}

	s.year, s.quarter = ParseQuarter(label)
	return s
}

// ModelOldVolume is the combined old-segment order volume the model predicts
// for the given populations and parameters.
func ModelOldVolume(pop models.Population, p models.SimulationParameters) float64 {
	return (pop.OldDirectUsers * p.OldDirectRepurchaseRate / 100 * p.OldDirectAvgOrders) +
		(pop.OldMetaUsers * p.OldMetaRepurchaseRate / 100 * p.OldMetaAvgOrders)
}

// step projects one quarter and returns it with the state for the next one.
func step(s state, p models.SimulationParameters) (models.QuarterlyRecord, state) {
	s.quarter++
	if s.quarter > 4 {
		s.quarter = 1
		s.year++
	}

	currentNew := s.lastNew * (1 + p.NewUsersQuarterlyGrowth/100)
	newOrders := roundOrders(currentNew * p.NewUsersAvgOrders)

	activeOldDirect := s.poolOldDirect * (p.OldDirectRepurchaseRate / 100)
	activeOldMeta := s.poolOldMeta * (p.OldMetaRepurchaseRate / 100)
	fromOldDirect := activeOldDirect * p.OldDirectAvgOrders
	fromOldMeta := activeOldMeta * p.OldMetaAvgOrders

	directShare := p.OldDirectUserRepurchaseDirectPercent / 100
	metaShare := p.OldMetaUserRepurchaseDirectPercent / 100
	directOrders := roundOrders(fromOldDirect*directShare + fromOldMeta*metaShare)
	metaOrders := roundOrders(fromOldDirect*(1-directShare) + fromOldMeta*(1-metaShare))

	total := newOrders + directOrders + metaOrders

	rec := models.QuarterlyRecord{
		Quarter:              Label(s.year, s.quarter),
		Year:                 models.Int(s.year),
		NewDirect:            newOrders,
		OldDirect:            directOrders,
		OldMeta:              metaOrders,
		Total:                total,
		NewPercent:           models.Float(models.Percent(newOrders, total)),
		OldDirectPercent:     models.Float(models.Percent(directOrders, total)),
		OldMetaPercent:       models.Float(models.Percent(metaOrders, total)),
		QoQGrowth:            models.Float(models.Growth(total, s.lastTotal)),
		Type:                 models.TypeForecast,
		NewOfDirectPercent:   models.Float(models.Percent(newOrders, newOrders+directOrders)),
		NewOfMetaPercent:     models.Float(models.Percent(newOrders, newOrders+metaOrders)),
		RepurchaseRateDirect: models.Float(p.OldDirectRepurchaseRate),
		RepurchaseRateMeta:   models.Float(p.OldMetaRepurchaseRate),
	}

	// New users graduate into the old-direct pool; the meta pool is not replenished.
	s.poolOldDirect += currentNew
	s.lastNew = currentNew
	s.lastTotal = total
	return rec, s
}

// maxOrders bounds a single channel so that the sum of three still fits an int.
const maxOrders = 1 << 53

// roundOrders rounds half up, the way the dashboard always has. NaN collapses
// to zero and values beyond maxOrders saturate.
func roundOrders(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= maxOrders:
		return maxOrders
	case x <= -maxOrders:
		return -maxOrders
	}
	return int(math.Floor(x + 0.5))
}

// ParseQuarter extracts year and quarter from a "<year> Q<n>" label. Labels
// that don't match fall back to 2023 Q4.
func ParseQuarter(label string) (year, quarter int) {
	m := quarterLabel.FindStringSubmatch(label)
	if m == nil {
		return fallbackYear, fallbackQuarter
	}
	year, _ = strconv.Atoi(m[1])
	quarter, _ = strconv.Atoi(m[2])
	return year, quarter
}

// Label formats a quarter label.
func Label(year, quarter int) string {
	return strconv.Itoa(year) + " Q" + strconv.Itoa(quarter)
}

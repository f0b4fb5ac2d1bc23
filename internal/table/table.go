// Package table formats quarterly records for the data table view.
package table

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"orderplan-go-api/internal/models"
)

const missing = "-"

var printer = message.NewPrinter(language.English)

// Row is one formatted table line.
type Row struct {
	Quarter              string `json:"quarter"`
	Forecast             bool   `json:"forecast"`
	NewDirect            string `json:"newDirect"`
	OldDirect            string `json:"oldDirect"`
	OldMeta              string `json:"oldMeta"`
	Total                string `json:"total"`
	QoQGrowth            string `json:"qoqGrowth"`
	Trend                int    `json:"trend"` // sign of QoQ growth
	NewPercent           string `json:"newPercent"`
	OldDirectPercent     string `json:"oldDirectPercent"`
	OldMetaPercent       string `json:"oldMetaPercent"`
	NewOfDirectPercent   string `json:"newOfDirectPercent"`
	NewOfMetaPercent     string `json:"newOfMetaPercent"`
	RepurchaseRateDirect string `json:"repurchaseRateDirect"`
	RepurchaseRateMeta   string `json:"repurchaseRateMeta"`
}

// Format renders records as table rows. Values absent from a record are
// derived from its counts or neighbours where possible, otherwise shown as "-".
func Format(records []models.QuarterlyRecord) []Row {
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		qoq := 0.0
		switch {
		case r.QoQGrowth != nil:
			qoq = *r.QoQGrowth
		case i > 0:
			qoq = models.Growth(r.Total, records[i-1].Total)
		}

		row := Row{
			Quarter:              r.Quarter,
			Forecast:             r.IsForecast(),
			NewDirect:            Thousands(r.NewDirect),
			OldDirect:            Thousands(r.OldDirect),
			OldMeta:              Thousands(r.OldMeta),
			Total:                Thousands(r.Total),
			QoQGrowth:            signed(qoq, 2),
			Trend:                sign(qoq),
			NewPercent:           percent(r.NewPercent, 1),
			OldDirectPercent:     percent(r.OldDirectPercent, 1),
			OldMetaPercent:       percent(r.OldMetaPercent, 1),
			NewOfDirectPercent:   percent(ratio(r.NewOfDirectPercent, r.NewDirect, r.NewDirect+r.OldDirect), 2),
			NewOfMetaPercent:     percent(ratio(r.NewOfMetaPercent, r.NewDirect, r.NewDirect+r.OldMeta), 2),
			RepurchaseRateDirect: rate(r.RepurchaseRateDirect),
			RepurchaseRateMeta:   rate(r.RepurchaseRateMeta),
		}
		rows = append(rows, row)
	}
	return rows
}

func ratio(v *float64, part, whole int) *float64 {
	if v != nil {
		return v
	}
	if whole == 0 {
		return nil
	}
	return models.Float(models.Percent(part, whole))
}

func percent(v *float64, places int32) string {
	if v == nil {
		return missing
	}
	return Fixed(*v, places) + "%"
}

// rate hides zero rates; actual rows never carry them.
func rate(v *float64) string {
	if v == nil || *v == 0 {
		return missing
	}
	return Fixed(*v, 2) + "%"
}

func signed(v float64, places int32) string {
	s := Fixed(v, places) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Fixed formats v with a fixed number of decimals, rounding half away from zero.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Thousands formats n with comma group separators.
func Thousands(n int) string {
	return printer.Sprintf("%d", n)
}

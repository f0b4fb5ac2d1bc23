package forecast

import (
	"math"

	"orderplan-go-api/internal/models"
)

// YearOverYear compares every record with the one four positions earlier.
// The first year has nothing to compare against and is omitted.
func YearOverYear(records []models.QuarterlyRecord) []models.YearOverYearPoint {
	if len(records) <= 4 {
		return []models.YearOverYearPoint{}
	}
	out := make([]models.YearOverYearPoint, 0, len(records)-4)
	for i := 4; i < len(records); i++ {
		cur, prev := records[i], records[i-4]
		out = append(out, models.YearOverYearPoint{
			Quarter: cur.Quarter,
			Growth:  math.Round(models.Growth(cur.Total, prev.Total)*100) / 100,
			Volume:  cur.Total,
		})
	}
	return out
}

// Summarize builds the headline cards for the first forecast quarter. Growth
// against a zero actual is reported as 0.
func Summarize(lastActual *models.QuarterlyRecord, forecast []models.QuarterlyRecord) models.Summary {
	if len(forecast) == 0 {
		return models.Summary{}
	}
	first := forecast[0]
	var prev models.QuarterlyRecord
	if lastActual != nil {
		prev = *lastActual
	}
	return models.Summary{
		Quarter:   first.Quarter,
		Total:     models.SegmentStat{Value: first.Total, Growth: models.Growth(first.Total, prev.Total)},
		NewDirect: models.SegmentStat{Value: first.NewDirect, Growth: models.Growth(first.NewDirect, prev.NewDirect)},
		OldDirect: models.SegmentStat{Value: first.OldDirect, Growth: models.Growth(first.OldDirect, prev.OldDirect)},
		OldMeta:   models.SegmentStat{Value: first.OldMeta, Growth: models.Growth(first.OldMeta, prev.OldMeta)},
	}
}

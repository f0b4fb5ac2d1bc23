package models

const (
	TypeActual   = "Actual"
	TypeForecast = "Forecast"
)

// QuarterlyRecord represents one business quarter, observed or projected
type QuarterlyRecord struct {
	Quarter   string `json:"quarter"` // "2024 Q1"
	Year      *int   `json:"year,omitempty"`
	NewDirect int    `json:"newDirect"`
	OldDirect int    `json:"oldDirect"`
	OldMeta   int    `json:"oldMeta"`
	Total     int    `json:"total"`

	NewPercent         *float64 `json:"newPercent,omitempty"`
	OldDirectPercent   *float64 `json:"oldDirectPercent,omitempty"`
	OldMetaPercent     *float64 `json:"oldMetaPercent,omitempty"`
	QoQGrowth          *float64 `json:"qoqGrowth,omitempty"`
	Type               string   `json:"type,omitempty"`
	NewOfDirectPercent *float64 `json:"newOfDirectPercent,omitempty"`
	NewOfMetaPercent   *float64 `json:"newOfMetaPercent,omitempty"`

	// Only set on forecast rows: the rates that produced them.
	RepurchaseRateDirect *float64 `json:"repurchaseRateDirect,omitempty"`
	RepurchaseRateMeta   *float64 `json:"repurchaseRateMeta,omitempty"`
}

// SegmentSum returns the sum of the three segment order counts.
func (r QuarterlyRecord) SegmentSum() int {
	return r.NewDirect + r.OldDirect + r.OldMeta
}

// Recompute enforces Total == NewDirect+OldDirect+OldMeta and recomputes the
// share and cross-segment percentages from the counts. Percentages whose
// denominator is zero are cleared. QoQGrowth is left alone since it depends
// on the previous row.
func (r *QuarterlyRecord) Recompute() {
	r.Total = r.SegmentSum()

	r.NewPercent, r.OldDirectPercent, r.OldMetaPercent = nil, nil, nil
	if r.Total > 0 {
		r.NewPercent = Float(Percent(r.NewDirect, r.Total))
		r.OldDirectPercent = Float(Percent(r.OldDirect, r.Total))
		r.OldMetaPercent = Float(Percent(r.OldMeta, r.Total))
	}

	r.NewOfDirectPercent, r.NewOfMetaPercent = nil, nil
	if d := r.NewDirect + r.OldDirect; d > 0 {
		r.NewOfDirectPercent = Float(Percent(r.NewDirect, d))
	}
	if d := r.NewDirect + r.OldMeta; d > 0 {
		r.NewOfMetaPercent = Float(Percent(r.NewDirect, d))
	}
}

// IsForecast reports whether the record was produced by the engine.
func (r QuarterlyRecord) IsForecast() bool {
	return r.Type == TypeForecast
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Growth returns the percentage change from prev to cur, or 0 when prev is not positive.
func Growth(cur, prev int) float64 {
	if prev <= 0 {
		return 0
	}
	return float64(cur-prev) / float64(prev) * 100
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// Clone returns a deep copy of r.
func (r QuarterlyRecord) Clone() QuarterlyRecord {
	c := r
	for _, p := range []**float64{
		&c.NewPercent, &c.OldDirectPercent, &c.OldMetaPercent, &c.QoQGrowth,
		&c.NewOfDirectPercent, &c.NewOfMetaPercent, &c.RepurchaseRateDirect, &c.RepurchaseRateMeta,
	} {
		if *p != nil {
			*p = Float(**p)
		}
	}
	if c.Year != nil {
		c.Year = Int(*c.Year)
	}
	return c
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(records []QuarterlyRecord) []QuarterlyRecord {
	out := make([]QuarterlyRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

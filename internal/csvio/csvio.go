// Package csvio loads historical quarters from CSV and writes the combined
// history and forecast back out.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"orderplan-go-api/internal/models"
)

var ErrNoData = errors.New("csv has no data rows")

// Result is the outcome of an import.
type Result struct {
	Records []models.QuarterlyRecord
	Skipped int
}

// column binds a CSV header to a record field.
type column struct {
	name string
	get  func(models.QuarterlyRecord) (string, bool)
	set  func(*models.QuarterlyRecord, string)
}

func floatCol(name string, field func(*models.QuarterlyRecord) **float64) column {
	return column{
		name: name,
		get: func(r models.QuarterlyRecord) (string, bool) {
			v := *field(&r)
			if v == nil {
				return "", false
			}
			return strconv.FormatFloat(*v, 'f', -1, 64), true
		},
		set: func(r *models.QuarterlyRecord, s string) {
			if v, ok := parseNumber(s); ok {
				*field(r) = models.Float(v)
			}
		},
	}
}

func countCol(name string, field func(*models.QuarterlyRecord) *int) column {
	return column{
		name: name,
		get: func(r models.QuarterlyRecord) (string, bool) {
			return strconv.Itoa(*field(&r)), true
		},
		set: func(r *models.QuarterlyRecord, s string) {
			if v, ok := parseCount(s); ok {
				*field(r) = v
			}
		},
	}
}

// columns is the canonical field order.
var columns = []column{
	{
		name: "quarter",
		get:  func(r models.QuarterlyRecord) (string, bool) { return r.Quarter, true },
		set:  func(r *models.QuarterlyRecord, s string) { r.Quarter = s },
	},
	{
		name: "year",
		get: func(r models.QuarterlyRecord) (string, bool) {
			if r.Year == nil {
				return "", false
			}
			return strconv.Itoa(*r.Year), true
		},
		set: func(r *models.QuarterlyRecord, s string) {
			if v, ok := parseCount(s); ok {
				r.Year = models.Int(v)
			}
		},
	},
	countCol("newDirect", func(r *models.QuarterlyRecord) *int { return &r.NewDirect }),
	countCol("oldDirect", func(r *models.QuarterlyRecord) *int { return &r.OldDirect }),
	countCol("oldMeta", func(r *models.QuarterlyRecord) *int { return &r.OldMeta }),
	countCol("total", func(r *models.QuarterlyRecord) *int { return &r.Total }),
	floatCol("newPercent", func(r *models.QuarterlyRecord) **float64 { return &r.NewPercent }),
	floatCol("oldDirectPercent", func(r *models.QuarterlyRecord) **float64 { return &r.OldDirectPercent }),
	floatCol("oldMetaPercent", func(r *models.QuarterlyRecord) **float64 { return &r.OldMetaPercent }),
	floatCol("qoqGrowth", func(r *models.QuarterlyRecord) **float64 { return &r.QoQGrowth }),
	{
		name: "type",
		get: func(r models.QuarterlyRecord) (string, bool) {
			return r.Type, r.Type != ""
		},
		set: func(r *models.QuarterlyRecord, s string) { r.Type = s },
	},
	floatCol("newOfDirectPercent", func(r *models.QuarterlyRecord) **float64 { return &r.NewOfDirectPercent }),
	floatCol("newOfMetaPercent", func(r *models.QuarterlyRecord) **float64 { return &r.NewOfMetaPercent }),
	floatCol("repurchaseRateDirect", func(r *models.QuarterlyRecord) **float64 { return &r.RepurchaseRateDirect }),
	floatCol("repurchaseRateMeta", func(r *models.QuarterlyRecord) **float64 { return &r.RepurchaseRateMeta }),
}

func lookup(name string) (column, bool) {
	for _, c := range columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

// parseNumber accepts thousands separators ("1,234.5"). Empty or malformed
// cells report false.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// maxCount is the largest order count accepted from a file.
const maxCount = 1 << 53

// parseCount reads an order count. Fractions round half up; negative,
// non-finite and oversized values are malformed.
func parseCount(s string) (int, bool) {
	v, ok := parseNumber(s)
	if !ok || math.IsNaN(v) || v < 0 || v > maxCount {
		return 0, false
	}
	return int(math.Floor(v + 0.5)), true
}

// Import reads actual quarters from r. Unknown columns are ignored, missing
// or malformed segment counts default to 0 and the total is always
// recomputed from the segments. Rows typed as anything but Actual, and rows shorter than the
// header, are skipped. Shares and cross-segment ratios are recomputed; QoQ
// growth is derived from the previous loaded row when the file lacks it.
func Import(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, ErrNoData
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	cols := make([]*column, len(header))
	for i, h := range header {
		if c, ok := lookup(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))); ok {
			cols[i] = &c
		}
	}

	var res Result
	rows := 0
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rows++
				res.Skipped++
				continue
			}
			return Result{}, fmt.Errorf("read row: %w", err)
		}
		if blank(cells) {
			continue
		}
		rows++
		if len(cells) < len(header) {
			res.Skipped++
			continue
		}

		var rec models.QuarterlyRecord
		for i, c := range cols {
			if c != nil {
				c.set(&rec, strings.TrimSpace(cells[i]))
			}
		}
		if rec.Type != "" && rec.Type != models.TypeActual {
			res.Skipped++
			continue
		}
		rec.Type = models.TypeActual
		rec.Recompute()

		if rec.QoQGrowth == nil {
			var prevTotal int
			if n := len(res.Records); n > 0 {
				prevTotal = res.Records[n-1].Total
			}
			rec.QoQGrowth = models.Float(models.Growth(rec.Total, prevTotal))
		}
		res.Records = append(res.Records, rec)
	}

	if rows == 0 {
		return Result{}, ErrNoData
	}
	return res, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Export writes records as CSV. The column set comes from the fields present
// on the first record; absent values on later rows are written empty.
func Export(w io.Writer, records []models.QuarterlyRecord) error {
	if len(records) == 0 {
		return ErrNoData
	}

	var present []column
	for _, c := range columns {
		if _, ok := c.get(records[0]); ok {
			present = append(present, c)
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(present))
	for i, c := range present {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(present))
	for _, r := range records {
		for i, c := range present {
			row[i], _ = c.get(r)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", r.Quarter, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

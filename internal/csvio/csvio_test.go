package csvio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"orderplan-go-api/internal/forecast"
	"orderplan-go-api/internal/models"
)

func TestImport_RecomputesTotalAndDerivedFields(t *testing.T) {
	in := "quarter,newDirect,oldDirect,oldMeta,total\n" +
		"2024 Q1,\"1,000\",500,500,99999\n" +
		"2024 Q2,1500,,500,\n"

	res, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}

	first := res.Records[0]
	if first.NewDirect != 1000 || first.Total != 2000 {
		t.Fatalf("got newDirect=%d total=%d, want 1000 and 2000", first.NewDirect, first.Total)
	}
	if first.Type != models.TypeActual {
		t.Fatalf("got type %q, want Actual", first.Type)
	}
	if *first.NewPercent != 50 || *first.QoQGrowth != 0 {
		t.Fatalf("got newPercent=%v qoq=%v", *first.NewPercent, *first.QoQGrowth)
	}

	second := res.Records[1]
	if second.OldDirect != 0 || second.Total != 2000 {
		t.Fatalf("missing field should default to 0: %+v", second)
	}
	if *second.QoQGrowth != 0 {
		t.Fatalf("got qoq %v, want 0", *second.QoQGrowth)
	}
	if *second.NewOfDirectPercent != 100 || *second.NewOfMetaPercent != 75 {
		t.Fatalf("got ratios %v/%v", *second.NewOfDirectPercent, *second.NewOfMetaPercent)
	}
}

func TestImport_SkipsForecastAndShortRows(t *testing.T) {
	in := "quarter,newDirect,oldDirect,oldMeta,type\n" +
		"2024 Q1,10,10,10,Actual\n" +
		"2024 Q2,10,10\n" +
		"2024 Q3,10,10,10,Forecast\n" +
		"2024 Q4,20,10,10,\n"

	res, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 2 || res.Skipped != 2 {
		t.Fatalf("got %d records, %d skipped; want 2 and 2", len(res.Records), res.Skipped)
	}
	if res.Records[1].Quarter != "2024 Q4" {
		t.Fatalf("got %q, want 2024 Q4", res.Records[1].Quarter)
	}
	if got := *res.Records[1].QoQGrowth; math.Abs(got-33.333333333333336) > 1e-9 {
		t.Fatalf("qoq against previous loaded row: got %v", got)
	}
}

func TestImport_KeepsSuppliedQoQ(t *testing.T) {
	in := "quarter,newDirect,oldDirect,oldMeta,qoqGrowth\n2024 Q1,1,1,1,12.5\n"
	res, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *res.Records[0].QoQGrowth != 12.5 {
		t.Fatalf("got %v, want 12.5", *res.Records[0].QoQGrowth)
	}
}

func TestImport_MalformedNumbersBecomeZero(t *testing.T) {
	in := "quarter,newDirect,oldDirect,oldMeta\n2024 Q1,abc,5,n/a\n"
	res, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := res.Records[0]
	if r.NewDirect != 0 || r.OldDirect != 5 || r.OldMeta != 0 || r.Total != 5 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if *r.NewOfDirectPercent != 0 {
		t.Fatalf("got %v, want 0", *r.NewOfDirectPercent)
	}
	if r.NewOfMetaPercent != nil {
		t.Fatalf("zero denominator should leave the ratio unset, got %v", *r.NewOfMetaPercent)
	}
}

func TestImport_NoData(t *testing.T) {
	for _, in := range []string{"", "quarter,newDirect\n", "\n\n"} {
		if _, err := Import(strings.NewReader(in)); !errors.Is(err, ErrNoData) {
			t.Fatalf("Import(%q): got %v, want ErrNoData", in, err)
		}
	}
}

func TestExport_ColumnsFromFirstRecord(t *testing.T) {
	history := models.SeedHistory()
	full := append(history, forecast.Forecast(models.DefaultParameters(), &history[3])...)

	var buf bytes.Buffer
	if err := Export(&buf, full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	wantHeader := "quarter,newDirect,oldDirect,oldMeta,total,newPercent,oldDirectPercent,oldMetaPercent,qoqGrowth,type,newOfDirectPercent,newOfMetaPercent"
	if lines[0] != wantHeader {
		t.Fatalf("got header %q", lines[0])
	}
	if !strings.HasPrefix(lines[5], "2024 Q1,79509,32923,30683,143115,") {
		t.Fatalf("unexpected forecast row %q", lines[5])
	}
}

func TestExport_QuotesDelimiter(t *testing.T) {
	var buf bytes.Buffer
	recs := []models.QuarterlyRecord{{Quarter: "2024, Q1", NewDirect: 1, Total: 1}}
	if err := Export(&buf, recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\"2024, Q1\",1,0,0,1") {
		t.Fatalf("delimiter not quoted: %q", buf.String())
	}
}

func TestExport_MissingValuesEmpty(t *testing.T) {
	recs := []models.QuarterlyRecord{
		{Quarter: "a", QoQGrowth: models.Float(1)},
		{Quarter: "b"},
	}
	var buf bytes.Buffer
	if err := Export(&buf, recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "quarter,newDirect,oldDirect,oldMeta,total,qoqGrowth\na,0,0,0,0,1\nb,0,0,0,0,\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	// A generated history: seeded actuals followed by a year of projections
	// relabelled as actuals.
	history := models.SeedHistory()
	for _, r := range forecast.Forecast(models.DefaultParameters(), &history[3]) {
		r.Type = models.TypeActual
		r.RepurchaseRateDirect, r.RepurchaseRateMeta = nil, nil
		history = append(history, r)
	}

	var buf bytes.Buffer
	if err := Export(&buf, history); err != nil {
		t.Fatalf("export: %v", err)
	}
	res, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(res.Records) != len(history) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(history))
	}
	for i, got := range res.Records {
		want := history[i]
		if got.Quarter != want.Quarter || got.NewDirect != want.NewDirect || got.OldDirect != want.OldDirect ||
			got.OldMeta != want.OldMeta || got.Total != want.Total {
			t.Fatalf("row %d: got %+v, want %+v", i, got, want)
		}
		if math.Abs(*got.NewPercent-*want.NewPercent) > 0.01 {
			t.Fatalf("row %d: newPercent %v vs %v", i, *got.NewPercent, *want.NewPercent)
		}
		if math.Abs(*got.QoQGrowth-*want.QoQGrowth) > 1e-9 {
			t.Fatalf("row %d: qoq %v vs %v", i, *got.QoQGrowth, *want.QoQGrowth)
		}
	}
}

func TestImport_MalformedCountsDefaultToZero(t *testing.T) {
	in := "quarter,newDirect,oldDirect,oldMeta\n" +
		"2024 Q1,1e20,10,10\n" +
		"2024 Q2,-500,10.9,0\n" +
		"2024 Q3,NaN,2.5,Inf\n"

	res, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}

	want := []struct{ newDirect, oldDirect, oldMeta, total int }{
		{0, 10, 10, 20},
		{0, 11, 0, 11},
		{0, 3, 0, 3},
	}
	for i, w := range want {
		r := res.Records[i]
		if r.NewDirect != w.newDirect || r.OldDirect != w.oldDirect || r.OldMeta != w.oldMeta || r.Total != w.total {
			t.Fatalf("%s: got %d/%d/%d=%d, want %d/%d/%d=%d", r.Quarter,
				r.NewDirect, r.OldDirect, r.OldMeta, r.Total,
				w.newDirect, w.oldDirect, w.oldMeta, w.total)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1,234", 1234, true},
		{"10.5", 11, true},
		{"10.49", 10, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"1e20", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("parseCount(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

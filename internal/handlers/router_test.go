package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"orderplan-go-api/internal/config"
	"orderplan-go-api/internal/models"
	"orderplan-go-api/internal/services"
	"orderplan-go-api/internal/table"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{CacheTTLMinutes: 60, BodyLimitMB: 4, RateLimitPerMinute: 1000}
	cache := services.NewForecastCache(cfg)
	t.Cleanup(cache.Close)
	orchestrator := services.NewPlanningOrchestrator(cache, services.NewScenarioStore(models.PredefinedScenarios(), nil))
	return NewApp(cfg, orchestrator, false)
}

func do(t *testing.T, app *fiber.App, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(raw)
	}
	return do(t, app, method, path, fiber.MIMEApplicationJSON, r)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("got status %d, want %d: %s", resp.StatusCode, want, body)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodGet, "/health", "", nil)
	expectStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, http.MethodGet, "/health/ready", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decode(t, resp, &ready)
	if ready.Status != "ready" || ready.Checks["firestore"] != "disabled" {
		t.Fatalf("unexpected readiness: %+v", ready)
	}
}

func TestForecast_Anchored(t *testing.T) {
	app := newTestApp(t)
	anchor := models.SeedHistory()[3]

	resp := doJSON(t, app, http.MethodPost, "/v1/forecast", models.ForecastRequest{Anchor: &anchor})
	expectStatus(t, resp, fiber.StatusOK)

	var out models.ForecastResponse
	decode(t, resp, &out)
	if len(out.Forecast) != 4 {
		t.Fatalf("got %d quarters, want 4", len(out.Forecast))
	}
	if out.Forecast[0].Quarter != "2024 Q1" || out.Forecast[0].Total != 143115 {
		t.Fatalf("unexpected first quarter: %+v", out.Forecast[0])
	}
	if out.CacheHit {
		t.Fatal("first request should not be a cache hit")
	}

	resp = doJSON(t, app, http.MethodPost, "/v1/forecast", models.ForecastRequest{Anchor: &anchor})
	decode(t, resp, &out)
	if !out.CacheHit {
		t.Fatal("repeated request should be a cache hit")
	}
}

func TestForecast_EmptyBodyUsesFallbackAnchor(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/v1/forecast", "", nil)
	expectStatus(t, resp, fiber.StatusOK)

	var out models.ForecastResponse
	decode(t, resp, &out)
	if out.Forecast[0].Quarter != "2024 Q1" || out.Forecast[0].Total != 260660 {
		t.Fatalf("unexpected first quarter: %+v", out.Forecast[0])
	}
}

func TestForecast_AnchorTotalIgnored(t *testing.T) {
	app := newTestApp(t)
	anchor := models.SeedHistory()[3]
	anchor.Total = 1

	resp := doJSON(t, app, http.MethodPost, "/v1/forecast", models.ForecastRequest{Anchor: &anchor})
	expectStatus(t, resp, fiber.StatusOK)

	var out models.ForecastResponse
	decode(t, resp, &out)
	if out.Forecast[0].Total != 143115 {
		t.Fatalf("got total %d, want 143115", out.Forecast[0].Total)
	}
	if q := *out.Forecast[0].QoQGrowth; q < 7.81 || q > 7.82 {
		t.Fatalf("got qoq %v, want 7.81", q)
	}
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodGet, "/v1/dashboard", "", nil)
	expectStatus(t, resp, fiber.StatusOK)

	var out models.DashboardResponse
	decode(t, resp, &out)
	if len(out.Data) != 8 {
		t.Fatalf("got %d rows, want 8", len(out.Data))
	}
	if out.Summary.Quarter != "2024 Q1" || out.Summary.Total.Value != 143115 {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
}

func TestParameters_UpdateAndReset(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPatch, "/v1/parameters/newUIDsQuarterlyGrowth", fiber.Map{"value": 25})
	expectStatus(t, resp, fiber.StatusOK)
	var params models.SimulationParameters
	decode(t, resp, &params)
	if params.NewUsersQuarterlyGrowth != 25 {
		t.Fatalf("got growth %v, want 25", params.NewUsersQuarterlyGrowth)
	}

	resp = doJSON(t, app, http.MethodPatch, "/v1/parameters/bogus", fiber.Map{"value": 1})
	expectStatus(t, resp, fiber.StatusBadRequest)

	resp = doJSON(t, app, http.MethodPatch, "/v1/parameters/newUIDsAvgOrders", fiber.Map{})
	expectStatus(t, resp, fiber.StatusBadRequest)

	resp = do(t, app, http.MethodGet, "/v1/parameters/newUIDsQuarterlyGrowth", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	var one struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	}
	decode(t, resp, &one)
	if one.Key != "newUIDsQuarterlyGrowth" || one.Value != 25 {
		t.Fatalf("unexpected parameter: %+v", one)
	}

	resp = do(t, app, http.MethodGet, "/v1/parameters/bogus", "", nil)
	expectStatus(t, resp, fiber.StatusBadRequest)

	resp = do(t, app, http.MethodGet, "/v1/parameters/controls", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	var controls struct {
		Controls []models.ParameterControl `json:"controls"`
	}
	decode(t, resp, &controls)
	if len(controls.Controls) != len(models.ParameterControls()) {
		t.Fatalf("got %d controls", len(controls.Controls))
	}

	resp = do(t, app, http.MethodPost, "/v1/parameters/reset", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	decode(t, resp, &params)
	if params != models.DefaultParameters() {
		t.Fatalf("reset did not restore defaults: %+v", params)
	}
}

func TestScenarios_Lifecycle(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/v1/scenarios", models.SaveScenarioRequest{Name: "Mine"})
	expectStatus(t, resp, fiber.StatusCreated)
	var saved models.Scenario
	decode(t, resp, &saved)
	if !saved.IsCustom || saved.Color != models.CustomScenarioColor || saved.ID == "" {
		t.Fatalf("unexpected saved scenario: %+v", saved)
	}

	resp = doJSON(t, app, http.MethodPost, "/v1/scenarios", models.SaveScenarioRequest{Name: "mine"})
	expectStatus(t, resp, fiber.StatusConflict)

	resp = doJSON(t, app, http.MethodPost, "/v1/scenarios", models.SaveScenarioRequest{Name: "  "})
	expectStatus(t, resp, fiber.StatusBadRequest)

	resp = do(t, app, http.MethodDelete, "/v1/scenarios/Base%20Case", "", nil)
	expectStatus(t, resp, fiber.StatusForbidden)

	resp = do(t, app, http.MethodDelete, "/v1/scenarios/Mine", "", nil)
	expectStatus(t, resp, fiber.StatusNoContent)

	resp = do(t, app, http.MethodDelete, "/v1/scenarios/Mine", "", nil)
	expectStatus(t, resp, fiber.StatusNotFound)

	resp = do(t, app, http.MethodGet, "/v1/scenarios", "", nil)
	var list struct {
		Scenarios []models.Scenario `json:"scenarios"`
	}
	decode(t, resp, &list)
	if len(list.Scenarios) != len(models.PredefinedScenarios()) {
		t.Fatalf("got %d scenarios, want %d", len(list.Scenarios), len(models.PredefinedScenarios()))
	}
}

func TestScenarios_ApplyAndCompare(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, http.MethodPost, "/v1/scenarios/Optimistic%20Growth/apply", "", nil)
	expectStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, http.MethodGet, "/v1/parameters", "", nil)
	var params models.SimulationParameters
	decode(t, resp, &params)
	if params.NewUsersQuarterlyGrowth != 25 {
		t.Fatalf("scenario not applied: %+v", params)
	}

	resp = do(t, app, http.MethodPost, "/v1/scenarios/Nope/apply", "", nil)
	expectStatus(t, resp, fiber.StatusNotFound)

	resp = do(t, app, http.MethodGet, "/v1/scenarios/compare", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	var cmp struct {
		Comparisons []models.ScenarioForecast `json:"comparisons"`
	}
	decode(t, resp, &cmp)
	if len(cmp.Comparisons) != len(models.PredefinedScenarios()) {
		t.Fatalf("got %d comparisons", len(cmp.Comparisons))
	}
	for _, c := range cmp.Comparisons {
		if len(c.Forecast) != 4 || c.Total <= 0 {
			t.Fatalf("bad comparison for %s: %+v", c.Scenario.Name, c)
		}
	}
}

func TestData_ImportTableExport(t *testing.T) {
	app := newTestApp(t)

	in := "quarter,newDirect,oldDirect,oldMeta\n2024 Q1,1000,500,500\n"
	resp := do(t, app, http.MethodPost, "/v1/data/import", "text/csv", strings.NewReader(in))
	expectStatus(t, resp, fiber.StatusOK)
	var imp models.ImportResponse
	decode(t, resp, &imp)
	if imp.Loaded != 1 || imp.Message != "Successfully loaded 1 actual data rows." {
		t.Fatalf("unexpected import response: %+v", imp)
	}

	resp = do(t, app, http.MethodGet, "/v1/data/table", "", nil)
	var tbl struct {
		Rows []table.Row `json:"rows"`
	}
	decode(t, resp, &tbl)
	if len(tbl.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(tbl.Rows))
	}
	if tbl.Rows[0].Quarter != "2024 Q1" || tbl.Rows[0].Total != "2,000" || tbl.Rows[1].Quarter != "2024 Q2" {
		t.Fatalf("unexpected rows: %+v", tbl.Rows[:2])
	}

	resp = do(t, app, http.MethodGet, "/v1/data/history", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	var hist struct {
		History []models.QuarterlyRecord `json:"history"`
	}
	decode(t, resp, &hist)
	if len(hist.History) != 1 || hist.History[0].Total != 2000 || hist.History[0].Type != models.TypeActual {
		t.Fatalf("unexpected history: %+v", hist.History)
	}

	resp = do(t, app, http.MethodGet, "/v1/data/export", "", nil)
	expectStatus(t, resp, fiber.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("got content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "simulation_data.csv") {
		t.Fatalf("got disposition %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "quarter,") || strings.Count(string(body), "\n") != 6 {
		t.Fatalf("unexpected export:\n%s", body)
	}
}

func TestData_ImportWithoutActualRows(t *testing.T) {
	app := newTestApp(t)

	in := "quarter,newDirect,oldDirect,oldMeta,type\n2024 Q1,1,1,1,Forecast\n"
	resp := do(t, app, http.MethodPost, "/v1/data/import", "text/csv", strings.NewReader(in))
	expectStatus(t, resp, fiber.StatusUnprocessableEntity)

	resp = do(t, app, http.MethodGet, "/v1/data/table", "", nil)
	var tbl struct {
		Rows []table.Row `json:"rows"`
	}
	decode(t, resp, &tbl)
	if len(tbl.Rows) != 8 {
		t.Fatalf("history changed after failed import: %d rows", len(tbl.Rows))
	}
}

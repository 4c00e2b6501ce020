package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cleanshores/shorecast/internal/events"
	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/cleanshores/shorecast/internal/store"
)

type stubForecast struct {
	days []pipeline.DayReading
}

func (s *stubForecast) Name() string        { return "stub" }
func (s *stubForecast) NeedsLocation() bool { return true }
func (s *stubForecast) FetchForecast(_ context.Context, _ *pipeline.Location) ([]pipeline.DayReading, error) {
	return s.days, nil
}

func newTestApp(t *testing.T, st store.Store) *fiber.App {
	t.Helper()

	app := fiber.New()
	pl := pipeline.New(pipeline.Config{
		Forecast: &stubForecast{days: []pipeline.DayReading{
			{Date: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), HighC: 26, LowC: 20, Condition: "Sunny"},
		}},
		Cache: st,
	})
	catalog := events.NewCatalog([]events.Event{
		{ID: "e1", Title: "Sunrise Sweep", StartsAt: time.Now().UTC().Add(48 * time.Hour)},
	})
	RegisterRoutes(app, pl, st, catalog)
	return app
}

func TestWeatherCoordinateValidation(t *testing.T) {
	app := newTestApp(t, store.NewMemory())

	// lat without lon is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=36.0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=95.0&lon=10.0", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherWithoutLocationIsBadRequest(t *testing.T) {
	// The stub source needs a location, so a bare request maps to 400.
	app := newTestApp(t, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	var body pipeline.RenderResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.OK || !body.Retryable || body.Message == "" {
		t.Fatalf("expected retryable failure payload, got %+v", body)
	}
}

func TestWeatherSuccessAndCachedSnapshot(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)

	// Nothing cached yet.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/cached", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	// A successful fetch renders and caches.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?lat=36.0&lon=129.4", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body pipeline.RenderResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.OK || body.Snapshot == nil || body.Recommendation == "" {
		t.Fatalf("expected success payload with recommendation, got %+v", body)
	}
	if body.Snapshot.Days[0].Label != pipeline.TodayLabel {
		t.Fatalf("expected first day labeled %q, got %q", pipeline.TodayLabel, body.Snapshot.Days[0].Label)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/cached", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d after a successful fetch, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestCleanupsList(t *testing.T) {
	app := newTestApp(t, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cleanups?upcoming=true", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Count  int            `json:"count"`
		Events []events.Event `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Count != 1 || len(body.Events) != 1 {
		t.Fatalf("expected one upcoming event, got %+v", body)
	}
}

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/sony/gobreaker"
)

// CoastalOpenDataForecast is the government open-data forecast source. It is
// keyed to a configured beach/station ID, so it can serve without a captured
// location, and its schema differs from the generic API: a flat list of
// time-indexed readings that may repeat per date.
type CoastalOpenDataForecast struct {
	name       string
	baseURL    string
	serviceKey string
	stationID  string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewCoastalOpenDataForecast(client *http.Client, baseURL, serviceKey, stationID string) *CoastalOpenDataForecast {
	return &CoastalOpenDataForecast{
		name:       "coastal-opendata",
		baseURL:    baseURL,
		serviceKey: serviceKey,
		stationID:  stationID,
		httpCfg:    HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit:    newBreaker("coastal-opendata"),
	}
}

func (s *CoastalOpenDataForecast) Name() string { return s.name }

// NeedsLocation is false: the station ID pins the forecast area.
func (s *CoastalOpenDataForecast) NeedsLocation() bool { return false }

func (s *CoastalOpenDataForecast) FetchForecast(ctx context.Context, _ *pipeline.Location) ([]pipeline.DayReading, error) {
	if s.baseURL == "" || s.serviceKey == "" || s.stationID == "" {
		return nil, fmt.Errorf("coastal open-data source is not fully configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("serviceKey", s.serviceKey)
		values.Set("stationId", s.stationID)
		values.Set("dataType", "JSON")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Response struct {
			Header struct {
				ResultCode string `json:"resultCode"`
				ResultMsg  string `json:"resultMsg"`
			} `json:"header"`
			Body struct {
				Items []struct {
					ForecastDate string  `json:"fcstDate"` // YYYYMMDD
					HighC        float64 `json:"tmx"`
					LowC         float64 `json:"tmn"`
					HumidityPct  float64 `json:"reh"`
					Weather      string  `json:"wf"`
				} `json:"items"`
			} `json:"body"`
		} `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if code := payload.Response.Header.ResultCode; code != "" && code != "00" {
		return nil, fmt.Errorf("open-data result %s: %s", code, payload.Response.Header.ResultMsg)
	}

	// Items are time-indexed and may carry several readings for the same
	// date; keep the first (most recent issue) per date, in source order.
	seen := make(map[string]bool)
	var readings []pipeline.DayReading
	for _, item := range payload.Response.Body.Items {
		if seen[item.ForecastDate] {
			continue
		}
		date, err := time.Parse("20060102", item.ForecastDate)
		if err != nil {
			continue
		}
		seen[item.ForecastDate] = true

		readings = append(readings, pipeline.DayReading{
			Date:        date.UTC(),
			HighC:       item.HighC,
			LowC:        item.LowC,
			HumidityPct: item.HumidityPct,
			Condition:   item.Weather,
		})
	}
	return readings, nil
}

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

// WeatherAPIForecast is the generic third-party primary source
// (api.weatherapi.com). It needs an API key and coordinates.
type WeatherAPIForecast struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPIForecast creates the source. days is clamped to 1..7.
func NewWeatherAPIForecast(client *http.Client, apiKey string, days int) *WeatherAPIForecast {
	if days < 1 {
		days = 5
	}
	if days > 7 {
		days = 7
	}
	return &WeatherAPIForecast{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		days:    days,
		httpCfg: HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit: newBreaker("weatherapi"),
	}
}

func (s *WeatherAPIForecast) Name() string { return s.name }

func (s *WeatherAPIForecast) NeedsLocation() bool { return true }

func (s *WeatherAPIForecast) FetchForecast(ctx context.Context, loc *pipeline.Location) ([]pipeline.DayReading, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}
	if loc == nil {
		return nil, fmt.Errorf("weatherapi requires coordinates")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", s.apiKey)
		values.Set("q", fmt.Sprintf("%f,%f", loc.Lat, loc.Lon))
		values.Set("days", fmt.Sprintf("%d", s.days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				DateEpoch int64 `json:"date_epoch"`
				Day       struct {
					MaxTempC    float64 `json:"maxtemp_c"`
					MinTempC    float64 `json:"mintemp_c"`
					AvgHumidity float64 `json:"avghumidity"`
					Condition   struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	readings := make([]pipeline.DayReading, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		readings = append(readings, pipeline.DayReading{
			Date:        time.Unix(fd.DateEpoch, 0).UTC(),
			HighC:       fd.Day.MaxTempC,
			LowC:        fd.Day.MinTempC,
			HumidityPct: fd.Day.AvgHumidity,
			Condition:   fd.Day.Condition.Text,
		})
	}
	return readings, nil
}

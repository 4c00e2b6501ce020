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

// OpenMeteoRealtime is the keyless secondary point-reading source
// (api.open-meteo.com). It enriches the snapshot with current conditions;
// its failure is absorbed by the pipeline.
type OpenMeteoRealtime struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoRealtime(client *http.Client) *OpenMeteoRealtime {
	return &OpenMeteoRealtime{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit: newBreaker("openmeteo"),
	}
}

func (s *OpenMeteoRealtime) Name() string { return s.name }

func (s *OpenMeteoRealtime) FetchCurrent(ctx context.Context, loc *pipeline.Location) (pipeline.Observation, error) {
	if loc == nil {
		return pipeline.Observation{}, fmt.Errorf("openmeteo requires coordinates")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("current_weather", "true")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return pipeline.Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			Time        string  `json:"time"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return pipeline.Observation{}, err
	}

	ts, err := time.Parse(time.RFC3339, payload.CurrentWeather.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	// Open-Meteo reports wind in km/h.
	wind := payload.CurrentWeather.WindSpeed / 3.6

	return pipeline.Observation{
		ObservedAt:   ts,
		TemperatureC: payload.CurrentWeather.Temperature,
		WindSpeedMS:  &wind,
		Condition:    describeWeatherCode(payload.CurrentWeather.WeatherCode),
	}, nil
}

// describeWeatherCode maps Open-Meteo weather codes to condition text
// (simplified WMO table).
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	default:
		return ""
	}
}

package pipeline

import (
	"context"
	"time"
)

// Condition is a normalized high-level weather condition code.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location is a point on the coast for which weather is fetched.
// Captured once per session and treated as immutable afterwards.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DayForecast is one rendered forecast day. Entries keep the order the
// source returned them in; the first entry is labeled "Today".
type DayForecast struct {
	Date        time.Time `json:"date"`
	Label       string    `json:"label"`
	HighC       float64   `json:"highC"`
	LowC        float64   `json:"lowC"`
	HumidityPct float64   `json:"humidityPct"`
	Condition   string    `json:"condition"`
}

// Snapshot is the normalized render-ready weather view. Optional fields are
// pointers so that a degraded fetch (secondary source down) simply omits them.
type Snapshot struct {
	Location      *Location     `json:"location,omitempty"`
	FetchedAt     time.Time     `json:"fetchedAt"`
	ConditionCode Condition     `json:"conditionCode"`
	ConditionText string        `json:"conditionText"`
	TemperatureC  float64       `json:"temperatureC"`
	FeelsLikeC    *float64      `json:"feelsLikeC,omitempty"`
	HumidityPct   *float64      `json:"humidityPct,omitempty"`
	WindSpeedMS   *float64      `json:"windSpeedMs,omitempty"`
	VisibilityM   *float64      `json:"visibilityM,omitempty"`
	Days          []DayForecast `json:"forecastDays,omitempty"`
	Sources       []string      `json:"sources,omitempty"`
}

// RenderResult is the tagged payload handed to the presentation layer.
// Exactly one of the success fields (Snapshot, Recommendation) or the
// failure fields (Message, Retryable) is meaningful depending on OK.
type RenderResult struct {
	OK             bool      `json:"ok"`
	Snapshot       *Snapshot `json:"snapshot,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	Message        string    `json:"message,omitempty"`
	Retryable      bool      `json:"retryable,omitempty"`

	// Err carries the underlying failure for callers that branch on the
	// error taxonomy. Never serialized.
	Err error `json:"-"`
}

// RenderFunc receives every RenderResult the pipeline produces.
type RenderFunc func(RenderResult)

// DayReading is a forecast source's normalized one-day entry.
type DayReading struct {
	Date        time.Time
	HighC       float64
	LowC        float64
	HumidityPct float64
	Condition   string
}

// Observation is a realtime source's normalized point-in-time reading.
type Observation struct {
	ObservedAt   time.Time
	TemperatureC float64
	FeelsLikeC   *float64
	HumidityPct  *float64
	WindSpeedMS  *float64
	VisibilityM  *float64
	Condition    string
}

// ForecastSource is the required primary weather source.
type ForecastSource interface {
	Name() string
	// NeedsLocation reports whether the source can serve a nil location
	// (station-pinned open-data endpoints can).
	NeedsLocation() bool
	FetchForecast(ctx context.Context, loc *Location) ([]DayReading, error)
}

// RealtimeSource is the optional secondary point-reading source.
type RealtimeSource interface {
	Name() string
	FetchCurrent(ctx context.Context, loc *Location) (Observation, error)
}

// Cache is the subset of the persistence store the pipeline writes the last
// good snapshot into. Failures are non-fatal and only logged.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

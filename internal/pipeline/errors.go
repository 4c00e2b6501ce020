package pipeline

import "errors"

var (
	// ErrNoLocation is returned when no location is available and the
	// configured forecast source cannot serve without one.
	ErrNoLocation = errors.New("no location available")

	// ErrWeatherUnavailable is returned when the primary forecast source
	// failed or produced no data. Always retryable by calling again.
	ErrWeatherUnavailable = errors.New("weather data unavailable")
)

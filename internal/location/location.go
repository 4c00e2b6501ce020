package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/kelvins/geocoder"
)

var (
	// ErrUnsupported is returned when no location source is configured.
	ErrUnsupported = errors.New("no location source available")

	// ErrPermissionDenied is returned when the geocoding backend refuses
	// the request (bad or missing API key, quota).
	ErrPermissionDenied = errors.New("location lookup denied")
)

// Provider yields the session location. Single-shot: implementations may
// cache the first successful answer for the lifetime of the process.
type Provider interface {
	Current(ctx context.Context) (pipeline.Location, error)
}

// Static always returns a fixed location from configuration.
type Static struct {
	loc pipeline.Location
}

func NewStatic(lat, lon float64) *Static {
	return &Static{loc: pipeline.Location{Lat: lat, Lon: lon}}
}

func (s *Static) Current(_ context.Context) (pipeline.Location, error) {
	return s.loc, nil
}

// Geocode resolves a configured beach address to coordinates via the Google
// geocoding API. The result is captured once and reused.
type Geocode struct {
	address string

	once sync.Once
	loc  pipeline.Location
	err  error
}

func NewGeocode(apiKey, address string) *Geocode {
	geocoder.ApiKey = apiKey
	return &Geocode{address: address}
}

func (g *Geocode) Current(_ context.Context) (pipeline.Location, error) {
	g.once.Do(func() {
		if g.address == "" || geocoder.ApiKey == "" {
			g.err = ErrUnsupported
			return
		}
		loc, err := geocoder.Geocoding(geocoder.Address{Street: g.address})
		if err != nil {
			g.err = fmt.Errorf("%w: %v", ErrPermissionDenied, err)
			return
		}
		g.loc = pipeline.Location{Lat: loc.Latitude, Lon: loc.Longitude}
	})
	return g.loc, g.err
}

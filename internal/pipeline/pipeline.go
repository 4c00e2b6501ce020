package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// SnapshotKey is the fixed cache key the last good snapshot is stored under.
const SnapshotKey = "weather:last-snapshot"

// DefaultHeatThresholdC is the high-temperature cutoff for the heat warning.
const DefaultHeatThresholdC = 32.0

// State tracks the pipeline through a single fetch-and-render cycle.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateRendered State = "rendered"
	StateFailed   State = "failed"
)

// Config wires the pipeline's collaborators. Forecast is required; Realtime,
// Cache and Render are optional and simply skipped when nil.
type Config struct {
	Forecast ForecastSource
	Realtime RealtimeSource
	Cache    Cache
	Render   RenderFunc

	// HeatThresholdC overrides DefaultHeatThresholdC when > 0.
	HeatThresholdC float64
}

// Pipeline acquires weather from the configured sources, normalizes it into
// a Snapshot, derives a cleanup recommendation and hands the result to the
// render callback. Each FetchAndRender call owns its own buffers; overlapping
// calls are independent and the last one to resolve wins the callback.
type Pipeline struct {
	forecast ForecastSource
	realtime RealtimeSource
	cache    Cache
	render   RenderFunc
	heatC    float64

	mu    sync.Mutex
	state State
}

// New creates a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	heat := cfg.HeatThresholdC
	if heat <= 0 {
		heat = DefaultHeatThresholdC
	}
	return &Pipeline{
		forecast: cfg.Forecast,
		realtime: cfg.Realtime,
		cache:    cfg.Cache,
		render:   cfg.Render,
		heatC:    heat,
		state:    StateIdle,
	}
}

// State returns the outcome of the most recent cycle.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// FetchAndRender runs one acquisition cycle for loc (nil means "no location
// captured"). The forecast and realtime requests are issued concurrently and
// joined; a realtime failure degrades the snapshot, a forecast failure fails
// the call. The store is only written on success. The render callback is
// invoked exactly once with the returned result.
func (p *Pipeline) FetchAndRender(ctx context.Context, loc *Location) RenderResult {
	p.setState(StateFetching)

	if p.forecast == nil {
		return p.fail(fmt.Errorf("%w: no forecast source configured", ErrWeatherUnavailable),
			"Weather service is not configured. Please try again later.")
	}
	if loc == nil && p.forecast.NeedsLocation() {
		return p.fail(ErrNoLocation,
			"We could not determine your location. Allow location access or pick a beach.")
	}

	var (
		wg          sync.WaitGroup
		days        []DayReading
		forecastErr error
		obs         Observation
		obsErr      error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		days, forecastErr = p.forecast.FetchForecast(ctx, loc)
	}()

	haveRealtime := p.realtime != nil
	if haveRealtime {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, obsErr = p.realtime.FetchCurrent(ctx, loc)
		}()
	}
	wg.Wait()

	if forecastErr != nil {
		log.Printf("forecast source %s failed: %v", p.forecast.Name(), forecastErr)
		return p.fail(fmt.Errorf("%w: %v", ErrWeatherUnavailable, forecastErr),
			"Weather data is unavailable right now. Please retry.")
	}
	if len(days) == 0 {
		return p.fail(fmt.Errorf("%w: source %s returned no forecast entries", ErrWeatherUnavailable, p.forecast.Name()),
			"Weather data is unavailable right now. Please retry.")
	}

	if haveRealtime && obsErr != nil {
		// Secondary failure degrades the snapshot; never fails the call.
		log.Printf("realtime source %s failed, omitting current conditions: %v", p.realtime.Name(), obsErr)
		haveRealtime = false
	}

	snap := buildSnapshot(loc, days, obs, haveRealtime)
	snap.Sources = append(snap.Sources, p.forecast.Name())
	if haveRealtime {
		snap.Sources = append(snap.Sources, p.realtime.Name())
	}

	p.cacheSnapshot(snap)

	res := RenderResult{
		OK:             true,
		Snapshot:       &snap,
		Recommendation: Recommend(snap, p.heatC),
	}
	p.setState(StateRendered)
	if p.render != nil {
		p.render(res)
	}
	return res
}

// LastKnown returns the cached snapshot from a previous successful cycle,
// or false when none is available. Cache errors degrade to "nothing cached".
func (p *Pipeline) LastKnown() (Snapshot, bool) {
	if p.cache == nil {
		return Snapshot{}, false
	}
	raw, err := p.cache.Get(SnapshotKey)
	if err != nil {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Printf("cached snapshot is corrupt, ignoring: %v", err)
		return Snapshot{}, false
	}
	return snap, true
}

func (p *Pipeline) cacheSnapshot(snap Snapshot) {
	if p.cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		log.Printf("snapshot marshal failed, skipping cache write: %v", err)
		return
	}
	if err := p.cache.Set(SnapshotKey, raw); err != nil {
		log.Printf("cache write failed: %v", err)
	}
}

func (p *Pipeline) fail(err error, userMsg string) RenderResult {
	res := RenderResult{
		OK:        false,
		Message:   userMsg,
		Retryable: true,
		Err:       err,
	}
	p.setState(StateFailed)
	if p.render != nil {
		p.render(res)
	}
	return res
}

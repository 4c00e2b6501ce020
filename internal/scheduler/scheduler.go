package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/cleanshores/shorecast/internal/location"
	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/go-co-op/gocron"
)

// Scheduler periodically re-runs the weather pipeline for the home beach so
// the cached snapshot stays warm between user requests.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pipeline  *pipeline.Pipeline
	locations location.Provider // may be nil
	interval  time.Duration
}

// New creates a Scheduler. locations may be nil; the pipeline then runs
// without a captured location (station-pinned sources still work).
func New(locations location.Provider, interval time.Duration, pl *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pipeline:  pl,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: refreshing weather snapshot")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var loc *pipeline.Location
		if s.locations != nil {
			l, err := s.locations.Current(ctx)
			if err != nil {
				log.Printf("scheduler: location lookup failed, continuing without: %v", err)
			} else {
				loc = &l
			}
		}

		res := s.pipeline.FetchAndRender(ctx, loc)
		if !res.OK {
			log.Printf("scheduler: refresh failed: %v", res.Err)
			return
		}
		log.Println("scheduler: snapshot refreshed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

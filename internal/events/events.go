package events

import (
	"sort"
	"time"

	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/google/uuid"
)

// Event is a scheduled beach-cleanup gathering. The catalog is static for
// now; there is no signup workflow.
type Event struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Beach     string            `json:"beach"`
	Location  pipeline.Location `json:"location"`
	StartsAt  time.Time         `json:"startsAt"`
	Organizer string            `json:"organizer"`
	Spots     int               `json:"spots"`
}

// Catalog holds the event list in chronological order.
type Catalog struct {
	events []Event
}

// NewCatalog copies and sorts the given events by start time.
func NewCatalog(evs []Event) *Catalog {
	sorted := make([]Event, len(evs))
	copy(sorted, evs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartsAt.Before(sorted[j].StartsAt)
	})
	return &Catalog{events: sorted}
}

// DefaultCatalog seeds the demo event list relative to now.
func DefaultCatalog(now time.Time) *Catalog {
	day := func(offset, hour int) time.Time {
		d := now.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
	}

	return NewCatalog([]Event{
		{
			ID:        uuid.NewString(),
			Title:     "Sunrise Shore Sweep",
			Beach:     "North Point Beach",
			Location:  pipeline.Location{Lat: 36.062, Lon: 129.379},
			StartsAt:  day(2, 7),
			Organizer: "Clean Shores Collective",
			Spots:     40,
		},
		{
			ID:        uuid.NewString(),
			Title:     "Weekend Tideline Cleanup",
			Beach:     "Harbor Cove",
			Location:  pipeline.Location{Lat: 35.158, Lon: 129.160},
			StartsAt:  day(5, 9),
			Organizer: "Harbor Volunteers",
			Spots:     60,
		},
		{
			ID:        uuid.NewString(),
			Title:     "Dune Restoration & Litter Pick",
			Beach:     "Crescent Sands",
			Location:  pipeline.Location{Lat: 34.756, Lon: 127.662},
			StartsAt:  day(9, 8),
			Organizer: "Coastal Care",
			Spots:     25,
		},
	})
}

// List returns all events, oldest first.
func (c *Catalog) List() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Upcoming returns events starting at or after now, oldest first.
func (c *Catalog) Upcoming(now time.Time) []Event {
	var out []Event
	for _, e := range c.events {
		if !e.StartsAt.Before(now) {
			out = append(out, e)
		}
	}
	return out
}

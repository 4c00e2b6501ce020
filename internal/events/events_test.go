package events

import (
	"testing"
	"time"
)

func TestCatalogSortsChronologically(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	c := NewCatalog([]Event{
		{ID: "c", Title: "Third", StartsAt: base.AddDate(0, 0, 7)},
		{ID: "a", Title: "First", StartsAt: base},
		{ID: "b", Title: "Second", StartsAt: base.AddDate(0, 0, 3)},
	})

	got := c.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("events not in chronological order: %+v", got)
	}
}

func TestCatalogUpcoming(t *testing.T) {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	c := NewCatalog([]Event{
		{ID: "past", StartsAt: base.AddDate(0, 0, -1)},
		{ID: "now", StartsAt: base},
		{ID: "future", StartsAt: base.AddDate(0, 0, 2)},
	})

	got := c.Upcoming(base)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(got))
	}
	if got[0].ID != "now" || got[1].ID != "future" {
		t.Fatalf("unexpected upcoming events: %+v", got)
	}
}

func TestDefaultCatalogIsUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := DefaultCatalog(now)

	evs := c.List()
	if len(evs) == 0 {
		t.Fatal("default catalog must not be empty")
	}
	for _, e := range evs {
		if e.ID == "" {
			t.Fatalf("event %q has no id", e.Title)
		}
		if e.StartsAt.Before(now) {
			t.Fatalf("seeded event %q starts in the past: %v", e.Title, e.StartsAt)
		}
	}
}

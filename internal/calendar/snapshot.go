package calendar

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Snapshot is the in-memory view of the user's calendar. It is replaced
// wholesale by a refresh and appended to optimistically when an event is
// created locally. Tool calls execute one at a time, but the refresher
// runs on its own goroutine, so access is guarded.
type Snapshot struct {
	mu          sync.RWMutex
	events      []Event
	refreshedAt time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in a fresh set of events.
func (s *Snapshot) Replace(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]Event(nil), events...)
	s.refreshedAt = time.Now()
}

// Append adds a single event, used for optimistic local creation.
func (s *Snapshot) Append(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of all events.
func (s *Snapshot) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}

// Len returns the number of events in the snapshot.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// EventsBetween returns events overlapping the half-open range [min, max),
// ordered by start time.
func (s *Snapshot) EventsBetween(min, max time.Time) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, ev := range s.events {
		if ev.Start.Before(max) && min.Before(ev.End) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// ByID looks up an event by its id.
func (s *Snapshot) ByID(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// ByTitle looks up an event by title, case-insensitively.
func (s *Snapshot) ByTitle(title string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if strings.EqualFold(ev.Title, title) {
			return ev, true
		}
	}
	return Event{}, false
}

// Titles returns the titles of all events, in snapshot order. Used for
// "did you mean" listings when a reference cannot be resolved.
func (s *Snapshot) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		if ev.Title != "" {
			out = append(out, ev.Title)
		}
	}
	return out
}

// RefreshedAt returns the time of the last wholesale replace.
func (s *Snapshot) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

package schedule

import (
	"testing"
	"time"

	"calassist/internal/calendar"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func iv(startH, startM, endH, endM int) Interval {
	return Interval{Start: at(startH, startM), End: at(endH, endM)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: iv(9, 0, 10, 0), b: iv(11, 0, 12, 0), want: false},
		{name: "partial overlap", a: iv(9, 0, 10, 0), b: iv(9, 30, 10, 30), want: true},
		{name: "containment", a: iv(9, 0, 12, 0), b: iv(10, 0, 11, 0), want: true},
		{name: "identical", a: iv(9, 0, 10, 0), b: iv(9, 0, 10, 0), want: true},
		{name: "edge touching is free", a: iv(9, 0, 10, 0), b: iv(10, 0, 11, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric for every pair.
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestAttendeeConflict(t *testing.T) {
	ev := calendar.Event{Attendees: []string{"alice@example.com", "bob@example.com"}}

	if !AttendeeConflict(ev, []string{"carol@example.com", "Alice@Example.com"}) {
		t.Error("expected conflict for shared attendee (case-insensitive)")
	}
	if AttendeeConflict(ev, []string{"carol@example.com"}) {
		t.Error("expected no conflict for disjoint attendee sets")
	}
	if AttendeeConflict(ev, nil) {
		t.Error("expected no conflict for empty candidate set")
	}
}

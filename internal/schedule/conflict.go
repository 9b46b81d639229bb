package schedule

import (
	"time"

	"calassist/internal/calendar"
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Intervals
// that merely touch at an edge do not conflict.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// EventInterval returns the interval an event occupies.
func EventInterval(ev calendar.Event) Interval {
	return Interval{Start: ev.Start, End: ev.End}
}

// AttendeeConflict reports whether the event involves any of the given
// attendees.
func AttendeeConflict(ev calendar.Event, attendees []string) bool {
	for _, a := range attendees {
		if ev.HasAttendee(a) {
			return true
		}
	}
	return false
}

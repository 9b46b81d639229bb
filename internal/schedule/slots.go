package schedule

import (
	"time"

	"calassist/internal/calendar"
)

// slotStep is the spacing between candidate slot starts.
const slotStep = 30 * time.Minute

// Window is the daily time-of-day range eligible for slot search.
type Window struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// DefaultWindow is the 09:00-17:00 working window.
var DefaultWindow = Window{StartHour: 9, EndHour: 17}

// onDay anchors the window to a specific calendar day.
func (w Window) onDay(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), w.StartHour, w.StartMinute, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), w.EndHour, w.EndMinute, 0, 0, day.Location())
	return start, end
}

// Slot is a candidate fixed-duration interval considered for scheduling.
// Slots are ephemeral: produced by FindFreeSlots, consumed by Rank and
// the presentation layer, never persisted.
type Slot struct {
	Start     time.Time
	End       time.Time
	Duration  time.Duration
	Available bool
	Conflicts []calendar.Event
}

// FindFreeSlots generates conflict-free candidate slots of the given
// duration across [startDate, endDate], one candidate per 30-minute
// boundary inside the working window on each working day. Slots are
// returned in chronological order. The function is pure: for a fixed
// event list, constraints and window the result is deterministic.
func FindFreeSlots(events []calendar.Event, c Constraints, duration time.Duration, startDate, endDate time.Time, win Window) []Slot {
	if duration <= 0 {
		return nil
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	last := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, loc)

	var slots []Slot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !c.IsWorkingDay(day.Weekday()) {
			continue
		}

		winStart, winEnd := win.onDay(day)
		for boundary := winStart; !boundary.Add(duration).After(winEnd); boundary = boundary.Add(slotStep) {
			candidate := Interval{Start: boundary, End: boundary.Add(duration)}
			if hasConflict(candidate, events) {
				continue
			}
			slots = append(slots, Slot{
				Start:     candidate.Start,
				End:       candidate.End,
				Duration:  duration,
				Available: true,
			})
		}
	}

	return slots
}

// hasConflict reports whether the candidate interval overlaps any event.
func hasConflict(candidate Interval, events []calendar.Event) bool {
	for _, ev := range events {
		if Overlaps(candidate, EventInterval(ev)) {
			return true
		}
	}
	return false
}

// CheckAvailability evaluates a single interval against the event list,
// optionally restricted to events involving the given attendees. It
// returns a Slot carrying the conflicting events so callers can present
// them.
func CheckAvailability(events []calendar.Event, interval Interval, attendees []string) Slot {
	slot := Slot{
		Start:     interval.Start,
		End:       interval.End,
		Duration:  interval.End.Sub(interval.Start),
		Available: true,
	}
	for _, ev := range events {
		if !Overlaps(interval, EventInterval(ev)) {
			continue
		}
		if len(attendees) > 0 && !AttendeeConflict(ev, attendees) {
			continue
		}
		slot.Available = false
		slot.Conflicts = append(slot.Conflicts, ev)
	}
	return slot
}

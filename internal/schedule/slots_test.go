package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calassist/internal/calendar"
)

func utcConstraints() Constraints {
	c := DefaultConstraints()
	c.Location = time.UTC
	return c
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestFindFreeSlotsEmptySnapshot(t *testing.T) {
	friday := monday.AddDate(0, 0, 4)
	slots := FindFreeSlots(nil, utcConstraints(), 30*time.Minute, monday, friday, DefaultWindow)

	// 09:00-17:00 with 30-minute boundaries fits 16 starts per day,
	// across five working days.
	require.Len(t, slots, 5*16)

	for _, slot := range slots {
		assert.True(t, slot.Available)
		wd := slot.Start.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}

	// Chronological order, first and last boundaries of the first day.
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(16*time.Hour+30*time.Minute), slots[15].Start)
}

func TestFindFreeSlotsSkipsWeekend(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)
	slots := FindFreeSlots(nil, utcConstraints(), 30*time.Minute, saturday, sunday, DefaultWindow)
	assert.Empty(t, slots)
}

func TestFindFreeSlotsConflictFiltering(t *testing.T) {
	events := []calendar.Event{
		{ID: "1", Title: "Standup", Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
	}
	slots := FindFreeSlots(events, utcConstraints(), time.Hour, monday, monday, DefaultWindow)

	// No returned slot may overlap the busy hour.
	busy := Interval{Start: events[0].Start, End: events[0].End}
	for _, slot := range slots {
		assert.False(t, Overlaps(Interval{Start: slot.Start, End: slot.End}, busy),
			"slot %v overlaps busy interval", slot.Start)
	}

	// 10:00 starts exactly at the busy end and is valid (half-open).
	require.NotEmpty(t, slots)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].Start)
}

func TestFindFreeSlotsDurationMustFitWindow(t *testing.T) {
	slots := FindFreeSlots(nil, utcConstraints(), 2*time.Hour, monday, monday, DefaultWindow)
	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	// The last 2h slot must end exactly at the window end.
	assert.Equal(t, monday.Add(15*time.Hour), last.Start)
	assert.Equal(t, monday.Add(17*time.Hour), last.End)
}

func TestFindFreeSlotsCustomWindow(t *testing.T) {
	win := Window{StartHour: 13, EndHour: 15}
	slots := FindFreeSlots(nil, utcConstraints(), 30*time.Minute, monday, monday, win)
	require.Len(t, slots, 4)
	assert.Equal(t, monday.Add(13*time.Hour), slots[0].Start)
}

func TestFindFreeSlotsDeterministic(t *testing.T) {
	events := []calendar.Event{
		{ID: "1", Start: monday.Add(11 * time.Hour), End: monday.Add(12 * time.Hour)},
	}
	a := FindFreeSlots(events, utcConstraints(), 30*time.Minute, monday, monday.AddDate(0, 0, 2), DefaultWindow)
	b := FindFreeSlots(events, utcConstraints(), 30*time.Minute, monday, monday.AddDate(0, 0, 2), DefaultWindow)
	assert.Equal(t, a, b)
}

func TestFindFreeSlotsZeroDuration(t *testing.T) {
	assert.Nil(t, FindFreeSlots(nil, utcConstraints(), 0, monday, monday, DefaultWindow))
}

func TestCheckAvailability(t *testing.T) {
	events := []calendar.Event{
		{ID: "1", Title: "Standup", Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour),
			Attendees: []string{"alice@example.com"}},
	}

	// Conflict for an overlapping interval with a shared attendee.
	slot := CheckAvailability(events, Interval{Start: monday.Add(9 * time.Hour), End: monday.Add(11 * time.Hour)},
		[]string{"alice@example.com"})
	assert.False(t, slot.Available)
	require.Len(t, slot.Conflicts, 1)
	assert.Equal(t, "Standup", slot.Conflicts[0].Title)

	// Same interval, different attendee: free.
	slot = CheckAvailability(events, Interval{Start: monday.Add(9 * time.Hour), End: monday.Add(11 * time.Hour)},
		[]string{"carol@example.com"})
	assert.True(t, slot.Available)

	// No attendee filter: any overlapping event conflicts.
	slot = CheckAvailability(events, Interval{Start: monday.Add(9 * time.Hour), End: monday.Add(11 * time.Hour)}, nil)
	assert.False(t, slot.Available)
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestSnapshotReplaceAndAppend(t *testing.T) {
	s := NewSnapshot()
	assert.Equal(t, 0, s.Len())

	s.Replace([]Event{
		{ID: "1", Title: "Standup", Start: day(9, 0), End: day(9, 30)},
		{ID: "2", Title: "Review", Start: day(14, 0), End: day(15, 0)},
	})
	require.Equal(t, 2, s.Len())
	assert.False(t, s.RefreshedAt().IsZero())

	s.Append(Event{ID: "3", Title: "1:1", Start: day(16, 0), End: day(16, 30)})
	assert.Equal(t, 3, s.Len())

	// Replace swaps the whole set, dropping the appended event.
	s.Replace([]Event{{ID: "4", Title: "Planning", Start: day(10, 0), End: day(11, 0)}})
	assert.Equal(t, 1, s.Len())
}

func TestSnapshotEventsBetween(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]Event{
		{ID: "2", Title: "Later", Start: day(14, 0), End: day(15, 0)},
		{ID: "1", Title: "Earlier", Start: day(9, 0), End: day(9, 30)},
		{ID: "3", Title: "Outside", Start: day(18, 0), End: day(19, 0)},
	})

	got := s.EventsBetween(day(9, 0), day(17, 0))
	require.Len(t, got, 2)
	// Ordered by start time.
	assert.Equal(t, "Earlier", got[0].Title)
	assert.Equal(t, "Later", got[1].Title)
}

func TestSnapshotEventsBetweenHalfOpen(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]Event{{ID: "1", Title: "Edge", Start: day(17, 0), End: day(18, 0)}})

	// An event starting exactly at the range end is excluded.
	assert.Empty(t, s.EventsBetween(day(9, 0), day(17, 0)))
	assert.Len(t, s.EventsBetween(day(9, 0), day(17, 1)), 1)
}

func TestSnapshotLookups(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]Event{
		{ID: "abc", Title: "Design Review", Start: day(9, 0), End: day(10, 0)},
	})

	ev, ok := s.ByID("abc")
	require.True(t, ok)
	assert.Equal(t, "Design Review", ev.Title)

	_, ok = s.ByID("missing")
	assert.False(t, ok)

	ev, ok = s.ByTitle("design review")
	require.True(t, ok, "title lookup should be case-insensitive")
	assert.Equal(t, "abc", ev.ID)

	assert.Equal(t, []string{"Design Review"}, s.Titles())
}

func TestEventHasAttendee(t *testing.T) {
	ev := Event{Attendees: []string{"Alice@Example.com", "bob@example.com"}}
	assert.True(t, ev.HasAttendee("alice@example.com"))
	assert.True(t, ev.HasAttendee("BOB@EXAMPLE.COM"))
	assert.False(t, ev.HasAttendee("carol@example.com"))
}

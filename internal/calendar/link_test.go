package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserEventLink(t *testing.T) {
	start := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	link, err := BrowserEventLink(LinkInput{
		Title:       "Project Sync",
		Start:       start,
		End:         start.Add(time.Hour),
		Attendees:   []string{"alice@example.com", "bob@example.com"},
		Location:    "Room 4",
		Description: "Weekly sync",
	})
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Project Sync", q.Get("text"))
	assert.Equal(t, "20260304T110000/20260304T120000", q.Get("dates"))
	assert.Equal(t, "Room 4", q.Get("location"))
	assert.Equal(t, "Weekly sync", q.Get("details"))
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, q["add"])
}

func TestBrowserEventLinkRecurrence(t *testing.T) {
	start := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)

	link, err := BrowserEventLink(LinkInput{
		Title:      "Standup",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Recurrence: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
	})
	require.NoError(t, err)
	u, _ := url.Parse(link)
	assert.True(t, strings.HasPrefix(u.Query().Get("recur"), "RRULE:"))

	// The RRULE: prefix is accepted and not doubled.
	link, err = BrowserEventLink(LinkInput{
		Title:      "Standup",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Recurrence: "RRULE:FREQ=DAILY",
	})
	require.NoError(t, err)
	u, _ = url.Parse(link)
	assert.Equal(t, "RRULE:FREQ=DAILY", u.Query().Get("recur"))
}

func TestBrowserEventLinkErrors(t *testing.T) {
	start := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   LinkInput
	}{
		{name: "missing title", in: LinkInput{Start: start, End: start.Add(time.Hour)}},
		{name: "missing times", in: LinkInput{Title: "X"}},
		{name: "end before start", in: LinkInput{Title: "X", Start: start, End: start.Add(-time.Hour)}},
		{name: "bad rrule", in: LinkInput{Title: "X", Start: start, End: start.Add(time.Hour), Recurrence: "FREQ=SOMETIMES"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BrowserEventLink(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestBuildICS(t *testing.T) {
	start := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	text, err := BuildICS([]Event{
		{
			ID:        "ev-1",
			Title:     "Project Sync",
			Start:     start,
			End:       start.Add(time.Hour),
			Location:  "Room 4",
			Attendees: []string{"alice@example.com"},
		},
	})
	require.NoError(t, err)

	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "Project Sync", "ev-1", "alice@example.com", "END:VCALENDAR"} {
		assert.Contains(t, text, want)
	}
}

func TestBuildICSEmpty(t *testing.T) {
	_, err := BuildICS(nil)
	assert.Error(t, err)
}

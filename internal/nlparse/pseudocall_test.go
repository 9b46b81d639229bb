package nlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalls(t *testing.T) {
	text := `I'll set that up: calendar_create_event(title="Team Sync", startTime="2026-03-11T11:00:00Z", durationMinutes=60)`

	calls := ParseCalls(text)
	require.Len(t, calls, 1)
	assert.Equal(t, "calendar_create_event", calls[0].Name)
	assert.Equal(t, "Team Sync", calls[0].Arguments["title"])
	assert.Equal(t, "2026-03-11T11:00:00Z", calls[0].Arguments["startTime"])
	assert.Equal(t, float64(60), calls[0].Arguments["durationMinutes"])
}

func TestParseCallsListArgument(t *testing.T) {
	calls := ParseCalls(`email_draft(recipients=["a@example.com", "b@example.com"], subject="Hi")`)
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"a@example.com", "b@example.com"}, calls[0].Arguments["recipients"])
	assert.Equal(t, "Hi", calls[0].Arguments["subject"])
}

func TestParseCallsIgnoresProse(t *testing.T) {
	for _, text := range []string{
		"I can set up a meeting (optional) if you like",
		"the function f(x) returns nothing useful",
		"empty()",
		"no calls here at all",
	} {
		assert.Empty(t, ParseCalls(text), "text: %s", text)
	}
}

func TestParseCallsMultiple(t *testing.T) {
	text := `calendar_check_availability(startTime="2026-03-04T10:00:00Z") then calendar_generate_link(title="Sync")`
	calls := ParseCalls(text)
	require.Len(t, calls, 2)
	assert.Equal(t, "calendar_check_availability", calls[0].Name)
	assert.Equal(t, "calendar_generate_link", calls[1].Name)
}

func TestParseCallsBooleanAndSingleQuotes(t *testing.T) {
	calls := ParseCalls(`calendar_create_event(title='1:1', allDay=true)`)
	require.Len(t, calls, 1)
	assert.Equal(t, "1:1", calls[0].Arguments["title"])
	assert.Equal(t, true, calls[0].Arguments["allDay"])
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`a=1, b=2`, []string{"a=1", "b=2"}},
		{`a="x, y", b=2`, []string{`a="x, y"`, "b=2"}},
		{`a=[1, 2], b=2`, []string{"a=[1, 2]", "b=2"}},
		{`single`, []string{"single"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTopLevel(tt.in, ','), "input: %s", tt.in)
	}
}

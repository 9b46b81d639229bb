package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calassist/internal/assistant"
)

func TestToolDefs(t *testing.T) {
	registry := assistant.NewDefaultRegistry()
	tools := ToolDefs(registry.Specs())
	require.Len(t, tools, len(registry.Specs()))

	for _, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		require.NotNil(t, tool.Function)
		assert.NotEmpty(t, tool.Function.Name)
		assert.NotEmpty(t, tool.Function.Description)

		schema, ok := tool.Function.Parameters.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", schema["type"])
	}
}

func TestDecodeCall(t *testing.T) {
	call := DecodeCall(ToolCall{
		Name:      "calendar_create_event",
		Arguments: `{"title": "Sync", "durationMinutes": 30}`,
	})
	assert.Equal(t, "calendar_create_event", call.Name)
	assert.Equal(t, "Sync", call.Arguments["title"])
	assert.Equal(t, float64(30), call.Arguments["durationMinutes"])
}

func TestDecodeCallMalformed(t *testing.T) {
	call := DecodeCall(ToolCall{Name: "email_draft", Arguments: `{"subject": `})
	assert.Equal(t, "email_draft", call.Name)
	assert.Empty(t, call.Arguments)
}

func TestFallbackCalls(t *testing.T) {
	registry := assistant.NewDefaultRegistry()

	text := `Sure, let me check: calendar_check_availability(startTime="2026-03-04T10:00:00Z") and also totally_made_up(x=1)`
	calls := FallbackCalls(text, registry)
	require.Len(t, calls, 1, "unregistered names are dropped")
	assert.Equal(t, "calendar_check_availability", calls[0].Name)
	assert.Equal(t, "2026-03-04T10:00:00Z", calls[0].Arguments["startTime"])
}

package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCatalog(t *testing.T) {
	r := NewDefaultRegistry()

	expected := []string{
		"calendar_check_availability",
		"calendar_create_event",
		"calendar_find_meeting_times",
		"calendar_generate_ics",
		"calendar_generate_link",
		"calendar_list_events",
		"calendar_optimize_schedule",
		"calendar_productivity_report",
		"email_draft",
	}

	specs := r.Specs()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Equal(t, expected, names)

	for _, name := range expected {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}
}

func TestSideEffectingFlags(t *testing.T) {
	r := NewDefaultRegistry()
	for _, s := range r.Specs() {
		switch s.Name {
		case "calendar_create_event", "email_draft":
			assert.True(t, s.SideEffecting, s.Name)
		default:
			assert.False(t, s.SideEffecting, s.Name)
		}
	}
}

func TestSpecJSONSchema(t *testing.T) {
	r := NewDefaultRegistry()
	spec, ok := r.Get("calendar_find_meeting_times")
	require.True(t, ok)

	schema := spec.JSONSchema()
	assert.Equal(t, "object", schema["type"])

	props := schema["properties"].(map[string]any)
	duration := props["durationMinutes"].(map[string]any)
	assert.Equal(t, "number", duration["type"])

	attendees := props["attendees"].(map[string]any)
	assert.Equal(t, "array", attendees["type"])

	urgency := props["urgency"].(map[string]any)
	assert.Equal(t, []string{"low", "medium", "high"}, urgency["enum"])

	assert.Equal(t, []string{"durationMinutes"}, schema["required"])
}

func TestSpecMCPTool(t *testing.T) {
	r := NewDefaultRegistry()
	spec, ok := r.Get("calendar_create_event")
	require.True(t, ok)

	tool := spec.MCPTool()
	assert.Equal(t, "calendar_create_event", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Contains(t, tool.InputSchema.Required, "title")
	assert.Contains(t, tool.InputSchema.Required, "startTime")
}

func TestEmailDedupeArgs(t *testing.T) {
	a := emailDedupeArgs(map[string]any{
		"recipients": []string{"b@x.com", "a@x.com"},
		"tone":       "formal",
	})
	b := emailDedupeArgs(map[string]any{
		"recipients": "a@x.com, b@x.com",
		"tone":       "formal",
	})
	assert.Equal(t, a, b)

	// Recipients named only in the message still form the key.
	c := emailDedupeArgs(map[string]any{
		"originalMessage": "email a@x.com and b@x.com",
		"tone":            "formal",
	})
	assert.Equal(t, a["recipients"], c["recipients"])
}

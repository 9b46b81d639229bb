package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"calassist/internal/assistant"
	"calassist/internal/calendar"
	"calassist/internal/email"
	"calassist/internal/llm"
	"calassist/internal/schedule"
)

type scriptedAdapter struct {
	replies []*llm.Reply
	calls   int
}

func (a *scriptedAdapter) Generate(ctx context.Context, history []llm.Message, tools []llms.Tool) (*llm.Reply, error) {
	reply := a.replies[a.calls]
	if a.calls < len(a.replies)-1 {
		a.calls++
	}
	return reply, nil
}

func newTestSession(adapter llm.Adapter) *chatSession {
	c := schedule.DefaultConstraints()
	c.Location = time.UTC
	env := &assistant.Env{
		Snapshot:    calendar.NewSnapshot(),
		Constraints: c,
		Window:      schedule.DefaultWindow,
		Resolver:    &email.Resolver{},
	}
	registry := assistant.NewDefaultRegistry()
	return &chatSession{
		adapter:  adapter,
		router:   assistant.NewRouter(registry, env),
		tools:    llm.ToolDefs(registry.Specs()),
		store:    newMemoryStore(),
		registry: registry,
	}
}

func TestTurnPlainText(t *testing.T) {
	session := newTestSession(&scriptedAdapter{replies: []*llm.Reply{
		{Text: "Hello! How can I help with your calendar?"},
	}})

	out, err := session.turn(t.Context(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help with your calendar?", out)

	entries, err := session.store.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, llm.RoleUser, entries[0].Role)
	assert.Equal(t, llm.RoleAssistant, entries[1].Role)
}

func TestTurnExecutesToolCalls(t *testing.T) {
	session := newTestSession(&scriptedAdapter{replies: []*llm.Reply{
		{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "calendar_generate_link",
			Arguments: `{"title": "Sync", "startTime": "2099-03-04T10:00:00Z"}`,
		}}},
		{Text: "Here is your link."},
	}})

	out, err := session.turn(t.Context(), "link for a sync next wednesday")
	require.NoError(t, err)
	assert.Equal(t, "Here is your link.", out)
}

func TestTurnPseudoCallFallback(t *testing.T) {
	session := newTestSession(&scriptedAdapter{replies: []*llm.Reply{
		{Text: `calendar_generate_link(title="Sync", startTime="2099-03-04T10:00:00Z")`},
	}})

	out, err := session.turn(t.Context(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "calendar.google.com")
}

func TestMemoryStore(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.Append(assistant.ConversationEntry{Role: "user", Content: "one"}))
	require.NoError(t, store.Append(assistant.ConversationEntry{Role: "assistant", Content: "two"}))

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, store.Clear())
	entries, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveExplicitSingle(t *testing.T) {
	var r Resolver
	res := r.Resolve([]string{"dana@example.com"}, "", "send dana an invite")
	assert.Equal(t, ModeSingle, res.Mode)
	assert.Equal(t, []string{"dana@example.com"}, res.Recipients)
	assert.False(t, res.UsedFallback)
}

func TestResolveExplicitListShortCircuits(t *testing.T) {
	var r Resolver

	// An explicit multi-entry list is always a group draft, whatever
	// the message says.
	for _, msg := range []string{"", "email each of them individually", "one email please"} {
		res := r.Resolve([]string{"a@x.com", "b@x.com"}, "any", msg)
		assert.Equal(t, ModeGroup, res.Mode, "message: %q", msg)
		assert.Equal(t, []string{"a@x.com", "b@x.com"}, res.Recipients)
	}
}

func TestResolveCommaSeparated(t *testing.T) {
	var r Resolver
	res := r.Resolve([]string{"dana@example.com, eli@example.com"}, "", "")
	assert.Equal(t, ModeGroup, res.Mode)
	assert.Equal(t, []string{"dana@example.com", "eli@example.com"}, res.Recipients)
}

func TestResolveGroupPhrase(t *testing.T) {
	var r Resolver

	res := r.Resolve(nil, "attendees are dana@example.com and eli@example.com", "send one email to all of them")
	assert.Equal(t, ModeGroup, res.Mode)
	assert.Len(t, res.Recipients, 2)
	assert.False(t, res.UsedFallback)

	// Group phrase with nobody to address falls back.
	res = r.Resolve(nil, "", "send a group email")
	assert.Equal(t, ModeGroup, res.Mode)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, DefaultFallbackRecipients, res.Recipients)
}

func TestResolveFanoutPhrase(t *testing.T) {
	var r Resolver
	res := r.Resolve(nil, "dana@example.com and eli@example.com", "email each of them separately")
	assert.Equal(t, ModeFanout, res.Mode)
	assert.Len(t, res.Recipients, 2)
}

func TestResolveFromContext(t *testing.T) {
	var r Resolver

	// Context-extracted addresses with no instruction default to
	// individual messages, even when there is only one.
	res := r.Resolve(nil, "loop in dana@example.com about this", "")
	assert.Equal(t, ModeFanout, res.Mode)
	assert.Equal(t, []string{"dana@example.com"}, res.Recipients)

	res = r.Resolve(nil, "tell dana@example.com and eli@example.com", "")
	assert.Equal(t, ModeFanout, res.Mode)
}

func TestResolveFallback(t *testing.T) {
	var r Resolver
	res := r.Resolve(nil, "", "invite the usual people")
	assert.True(t, res.UsedFallback)
	assert.Equal(t, ModeGroup, res.Mode)
	assert.Equal(t, DefaultFallbackRecipients, res.Recipients)
}

func TestResolveFallbackConfigured(t *testing.T) {
	r := Resolver{Fallback: []string{"team@example.com"}}
	res := r.Resolve(nil, "", "")
	assert.True(t, res.UsedFallback)
	assert.Equal(t, []string{"team@example.com"}, res.Recipients)
}

func TestCleanAddresses(t *testing.T) {
	got := cleanAddresses([]string{" Dana@Example.com ", "dana@example.com", "not-an-email", ""})
	assert.Equal(t, []string{"dana@example.com"}, got)
}

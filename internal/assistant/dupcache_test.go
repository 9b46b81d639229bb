package assistant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDupCacheWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cache := newDupCacheAt(func() time.Time { return now })

	result := &Result{Text: "hello"}
	cache.Put("k", result)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, result, got)

	now = now.Add(9 * time.Second)
	_, ok = cache.Get("k")
	assert.True(t, ok, "inside the window")

	now = now.Add(2 * time.Second)
	_, ok = cache.Get("k")
	assert.False(t, ok, "past the window")
}

func TestDupCacheCapacity(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cache := newDupCacheAt(func() time.Time { return now })

	for i := 0; i < dupCapacity+2; i++ {
		cache.Put(fmt.Sprintf("k%d", i), &Result{})
	}

	_, ok := cache.Get("k0")
	assert.False(t, ok, "oldest entries evicted")
	_, ok = cache.Get("k1")
	assert.False(t, ok)
	_, ok = cache.Get(fmt.Sprintf("k%d", dupCapacity+1))
	assert.True(t, ok, "newest entry kept")
}

func TestCallKeyOrderInsensitive(t *testing.T) {
	a := CallKey("email_draft", map[string]any{
		"recipients": []string{"a@x.com", "b@x.com"},
		"tone":       "formal",
	})
	b := CallKey("email_draft", map[string]any{
		"tone":       "formal",
		"recipients": []string{"b@x.com", "a@x.com"},
	})
	assert.Equal(t, a, b, "argument and recipient order must not matter")

	c := CallKey("email_draft", map[string]any{
		"recipients": []string{"a@x.com", "c@x.com"},
		"tone":       "formal",
	})
	assert.NotEqual(t, a, c)
}

func TestCallKeyOperationScoped(t *testing.T) {
	args := map[string]any{"title": "Sync"}
	assert.NotEqual(t, CallKey("calendar_create_event", args), CallKey("calendar_generate_link", args))
}

package assistant

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// dupWindow is how long a cached result satisfies repeats.
	dupWindow = 10 * time.Second
	// dupCapacity bounds the cache; the oldest entry is evicted.
	dupCapacity = 5
)

type dupEntry struct {
	key    string
	result *Result
	at     time.Time
}

// DupCache suppresses duplicate side-effecting calls: a repeat of an
// equivalent call within the window returns the cached result without
// re-executing. Eviction is time- and size-bounded only.
type DupCache struct {
	entries []dupEntry
	now     func() time.Time
}

// NewDupCache returns an empty cache using wall-clock time.
func NewDupCache() *DupCache {
	return &DupCache{now: time.Now}
}

// newDupCacheAt returns a cache with an injected clock, for tests.
func newDupCacheAt(now func() time.Time) *DupCache {
	return &DupCache{now: now}
}

// Get returns the cached result for key when one exists within the
// window.
func (c *DupCache) Get(key string) (*Result, bool) {
	cutoff := c.now().Add(-dupWindow)
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if e.key == key && e.at.After(cutoff) {
			return e.result, true
		}
	}
	return nil, false
}

// Put records a result. Expired and excess entries are dropped.
func (c *DupCache) Put(key string, result *Result) {
	now := c.now()
	cutoff := now.Add(-dupWindow)

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}
	c.entries = append(kept, dupEntry{key: key, result: result, at: now})
	if len(c.entries) > dupCapacity {
		c.entries = c.entries[len(c.entries)-dupCapacity:]
	}
}

// CallKey hashes the semantically relevant argument subset of a call.
// Keys are sorted so argument order never matters.
func CallKey(operation string, args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(operation)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(canonical(args[k]))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// canonical renders a value deterministically. String slices are sorted
// so that recipient or attendee order never defeats deduplication.
func canonical(v any) string {
	switch val := v.(type) {
	case []string:
		sorted := append([]string(nil), val...)
		sort.Strings(sorted)
		return strings.Join(sorted, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, canonical(item))
		}
		sort.Strings(parts)
		return strings.Join(parts, ",")
	case string:
		return val
	default:
		if enc, err := json.Marshal(v); err == nil {
			return string(enc)
		}
		return fmt.Sprintf("%v", v)
	}
}

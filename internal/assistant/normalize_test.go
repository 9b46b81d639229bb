package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"native list", []string{"a@x.com", "b@x.com"}, []string{"a@x.com", "b@x.com"}},
		{"any list", []any{"a@x.com", "b@x.com"}, []string{"a@x.com", "b@x.com"}},
		{"json array string", `["a@x.com", "b@x.com"]`, []string{"a@x.com", "b@x.com"}},
		{"comma string", "a@x.com, b@x.com", []string{"a@x.com", "b@x.com"}},
		{"bare scalar", "a@x.com", []string{"a@x.com"}},
		{"number scalar", 42, []string{"42"}},
		{"empty string", "", nil},
		{"malformed json", `["a@x.com", `, []string{`["a@x.com",`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringList(tt.in))
		})
	}
}

func TestStringListIdempotent(t *testing.T) {
	inputs := []any{
		"a@x.com, b@x.com",
		`["a@x.com", "b@x.com"]`,
		"a@x.com",
	}
	for _, in := range inputs {
		once := StringList(in)
		twice := StringList(any(once))
		assert.Equal(t, once, twice, "input: %v", in)
	}
}

func TestArgInt(t *testing.T) {
	args := map[string]any{
		"float":  float64(30),
		"int":    15,
		"string": "45",
		"junk":   "abc",
	}
	assert.Equal(t, 30, argInt(args, "float", 0))
	assert.Equal(t, 15, argInt(args, "int", 0))
	assert.Equal(t, 45, argInt(args, "string", 0))
	assert.Equal(t, 60, argInt(args, "junk", 60))
	assert.Equal(t, 60, argInt(args, "missing", 60))
}

func TestArgTime(t *testing.T) {
	args := map[string]any{
		"rfc3339": "2026-03-11T11:00:00Z",
		"simple":  "2026-03-11 11:00",
		"date":    "2026-03-11",
		"junk":    "later",
	}

	got, ok := argTime(args, "rfc3339", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC), got)

	got, ok = argTime(args, "simple", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 11, got.Hour())

	_, ok = argTime(args, "date", time.UTC)
	assert.True(t, ok)

	_, ok = argTime(args, "junk", time.UTC)
	assert.False(t, ok)

	_, ok = argTime(args, "missing", time.UTC)
	assert.False(t, ok)
}

package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StringList coerces the heterogeneous encodings list parameters arrive
// in into a flat []string: a native list, a JSON-array-encoded string, a
// comma-separated string, or a bare scalar wrapped as a singleton.
// Malformed JSON falls back to treating the raw string as one entry.
// Normalizing an already-normalized list is the identity.
func StringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return trimAll(val)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, strings.TrimSpace(fmt.Sprintf("%v", item)))
		}
		return dropEmpty(out)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return StringList(arr)
			}
			// Malformed JSON: the raw string stands as one entry.
			return []string{s}
		}
		if strings.Contains(s, ",") {
			return trimAll(strings.Split(s, ","))
		}
		return []string{s}
	default:
		return []string{strings.TrimSpace(fmt.Sprintf("%v", val))}
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return dropEmpty(out)
}

func dropEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// argString reads a string argument, tolerating non-string scalars.
func argString(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// argInt reads a numeric argument. JSON decoding yields float64; string
// encodings are parsed too.
func argInt(args map[string]any, key string, fallback int) int {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		var parsed int
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &parsed); err == nil {
			return parsed
		}
	}
	return fallback
}

// argBool reads a boolean argument, accepting string encodings.
func argBool(args map[string]any, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// timeLayouts are the formats timestamps arrive in from models.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// argTime parses a timestamp argument in the given location. The zero
// time and false are returned when the argument is absent or
// unparseable.
func argTime(args map[string]any, key string, loc *time.Location) (time.Time, bool) {
	s := argString(args, key)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

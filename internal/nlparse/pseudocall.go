package nlparse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Some models reply with tool calls written out as text, e.g.
// `calendar_create_event(title="Sync", startTime="2026-03-11T11:00:00Z")`,
// instead of using the function-calling protocol. ParseCalls recovers
// those so the request still dispatches.

// Call is a tool invocation extracted from free text.
type Call struct {
	Name      string
	Arguments map[string]any
}

var callPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(([^()]*)\)`)

// ParseCalls scans text for function-call shaped fragments with
// key=value arguments. Fragments without at least one key=value pair
// are ignored; prose like "meeting (optional)" does not match.
func ParseCalls(text string) []Call {
	var calls []Call
	for _, m := range callPattern.FindAllStringSubmatch(text, -1) {
		name, body := m[1], strings.TrimSpace(m[2])
		if body == "" {
			continue
		}

		args := map[string]any{}
		for _, part := range SplitTopLevel(body, ',') {
			key, raw, ok := strings.Cut(part, "=")
			if !ok {
				args = nil
				break
			}
			key = strings.TrimSpace(key)
			if key == "" || strings.ContainsAny(key, " \t\"'") {
				args = nil
				break
			}
			args[key] = parseValue(strings.TrimSpace(raw))
		}
		if len(args) == 0 {
			continue
		}
		calls = append(calls, Call{Name: name, Arguments: args})
	}
	return calls
}

// SplitTopLevel splits s on sep, ignoring separators inside quotes or
// brackets.
func SplitTopLevel(s string, sep byte) []string {
	var parts []string
	var depth int
	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// parseValue interprets a raw argument: quoted strings are unquoted,
// JSON literals (arrays, numbers, booleans) decode as themselves, and
// anything else stays a string.
func parseValue(raw string) any {
	if len(raw) >= 2 {
		if raw[0] == '"' && raw[len(raw)-1] == '"' {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return unquoted
			}
			return raw[1 : len(raw)-1]
		}
		if raw[0] == '\'' && raw[len(raw)-1] == '\'' {
			return raw[1 : len(raw)-1]
		}
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

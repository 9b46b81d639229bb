package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// browserBaseURL is the Google Calendar event-creation template endpoint.
const browserBaseURL = "https://calendar.google.com/calendar/render"

// LinkInput describes an event for the browser deep-link builder.
type LinkInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Attendees   []string
	Location    string
	Description string
	Recurrence  string // optional RRULE, with or without the "RRULE:" prefix
}

// BrowserEventLink builds a deep-link URL that opens the browser calendar
// with the event pre-filled. It is a pure function and performs no I/O.
// A recurrence rule, when present, is validated before being embedded.
func BrowserEventLink(in LinkInput) (string, error) {
	if in.Title == "" {
		return "", fmt.Errorf("link requires a title")
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return "", fmt.Errorf("link requires start and end times")
	}
	if !in.Start.Before(in.End) {
		return "", fmt.Errorf("link start %v must precede end %v", in.Start, in.End)
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", in.Title)
	q.Set("dates", formatLinkTime(in.Start)+"/"+formatLinkTime(in.End))
	if in.Description != "" {
		q.Set("details", in.Description)
	}
	if in.Location != "" {
		q.Set("location", in.Location)
	}
	for _, a := range in.Attendees {
		if a != "" {
			q.Add("add", a)
		}
	}
	if in.Recurrence != "" {
		rule, err := normalizeRRule(in.Recurrence)
		if err != nil {
			return "", err
		}
		q.Set("recur", rule)
	}

	return browserBaseURL + "?" + q.Encode(), nil
}

// formatLinkTime renders a local-time timestamp in the compact form the
// template endpoint expects.
func formatLinkTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// normalizeRRule validates a recurrence rule and returns it with the
// RRULE: prefix the template endpoint expects.
func normalizeRRule(rule string) (string, error) {
	body := strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if _, err := rrule.StrToRRule(body); err != nil {
		return "", fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return "RRULE:" + body, nil
}

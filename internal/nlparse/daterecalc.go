package nlparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Models occasionally resolve relative dates against their training
// cutoff instead of the current date. When the user's message contains a
// relative expression we recompute the date ourselves and override the
// model's value.

// startLayouts are the formats tool arguments arrive in.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// artifactDates are literal values models are known to hallucinate.
var artifactDates = []string{
	"2023-10-05",
	"2023-10-06",
	"2024-01-01",
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var relativeKeywords = []string{"next ", "tomorrow", "today", "tonight", "this "}

// ShouldRecalculate reports whether the proposed start time is suspect.
// Any of three signals triggers a recompute: the start matches a known
// artifact date, the start parses to a moment already in the past, or
// the message uses a relative date expression (in which case the model
// may have resolved it against the wrong "today", even to a plausible
// future date).
func ShouldRecalculate(proposedStart, originalMessage string, now time.Time) bool {
	if originalMessage == "" {
		return false
	}

	for _, artifact := range artifactDates {
		if strings.HasPrefix(proposedStart, artifact) {
			return true
		}
	}

	for _, layout := range startLayouts {
		parsed, err := time.ParseInLocation(layout, proposedStart, now.Location())
		if err != nil {
			continue
		}
		if parsed.Before(now) {
			return true
		}
		break
	}

	lower := strings.ToLower(originalMessage)
	for _, kw := range relativeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for name := range weekdayNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// Resolved is a recomputed meeting time.
type Resolved struct {
	Start time.Time
	End   time.Time
}

var (
	timePattern     = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	durationPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*hours?\b`)
	minutesPattern  = regexp.MustCompile(`(?i)\b(\d+)\s*min(?:ute)?s?\b`)
)

// Recompute derives a concrete start and end from the user's message.
// It needs both a day reference (weekday name, "today" or "tomorrow")
// and a clock time; otherwise it returns nil and the caller keeps the
// model's value.
func Recompute(message string, now time.Time) *Resolved {
	lower := strings.ToLower(message)

	day, ok := resolveDay(lower, now)
	if !ok {
		return nil
	}

	tm := timePattern.FindStringSubmatch(lower)
	if tm == nil {
		return nil
	}
	hour, _ := strconv.Atoi(tm[1])
	minute := 0
	if tm[2] != "" {
		minute, _ = strconv.Atoi(tm[2])
	}
	if hour > 12 || minute > 59 {
		return nil
	}
	if tm[3] == "pm" && hour != 12 {
		hour += 12
	}
	if tm[3] == "am" && hour == 12 {
		hour = 0
	}

	duration := time.Hour
	if m := durationPattern.FindStringSubmatch(lower); m != nil {
		if hours, err := strconv.ParseFloat(m[1], 64); err == nil && hours > 0 {
			duration = time.Duration(hours * float64(time.Hour))
		}
	} else if m := minutesPattern.FindStringSubmatch(lower); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil && mins > 0 {
			duration = time.Duration(mins) * time.Minute
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	return &Resolved{Start: start, End: start.Add(duration)}
}

// resolveDay finds the day the message refers to. A bare weekday means
// the soonest such day, today included. "Next <weekday>" skips past the
// current week: on a Monday, "next Wednesday" means the Wednesday nine
// days out, not in two. When several weekdays are named, the first one
// mentioned wins.
func resolveDay(lower string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1), true
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "tonight") {
		return today, true
	}

	firstIdx := -1
	var weekday time.Weekday
	for name, day := range weekdayNames {
		idx := strings.Index(lower, name)
		if idx < 0 {
			continue
		}
		if firstIdx == -1 || idx < firstIdx {
			firstIdx = idx
			weekday = day
		}
	}
	if firstIdx == -1 {
		return time.Time{}, false
	}
	isNext := strings.Contains(lower[:firstIdx], "next ")

	offset := (int(weekday) - int(now.Weekday()) + 7) % 7
	if isNext && offset < 7 {
		offset += 7
	}
	return today.AddDate(0, 0, offset), true
}

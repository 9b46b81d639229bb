package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"calassist/internal/calendar"
)

// RangeKind selects the reporting window relative to "now".
type RangeKind string

const (
	RangeToday     RangeKind = "today"
	RangeThisWeek  RangeKind = "this_week"
	RangeNextWeek  RangeKind = "next_week"
	RangeThisMonth RangeKind = "this_month"
)

// ResolveRange maps a range kind to concrete [start, end) bounds. Weeks
// start on Monday.
func ResolveRange(kind RangeKind, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch kind {
	case RangeToday:
		return today, today.AddDate(0, 0, 1), nil
	case RangeThisWeek:
		monday := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
		return monday, monday.AddDate(0, 0, 7), nil
	case RangeNextWeek:
		monday := today.AddDate(0, 0, -mondayOffset(today.Weekday())+7)
		return monday, monday.AddDate(0, 0, 7), nil
	case RangeThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown time range %q", kind)
	}
}

// mondayOffset returns how many days back the most recent Monday lies.
func mondayOffset(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// backToBackGap is the largest gap between consecutive meetings still
// counted as back-to-back.
const backToBackGap = 10 * time.Minute

// Report aggregates meeting load over a time range.
type Report struct {
	RangeStart      time.Time
	RangeEnd        time.Time
	MeetingCount    int
	TotalMinutes    int
	AverageMinutes  int
	BusiestDay      time.Weekday
	BusiestDayCount int
	BackToBackCount int
}

// BuildReport computes meeting statistics for events overlapping
// [start, end).
func BuildReport(events []calendar.Event, start, end time.Time) Report {
	r := Report{RangeStart: start, RangeEnd: end}

	var inRange []calendar.Event
	for _, ev := range events {
		if ev.Start.Before(end) && start.Before(ev.End) && !ev.AllDay {
			inRange = append(inRange, ev)
		}
	}
	sort.Slice(inRange, func(i, j int) bool { return inRange[i].Start.Before(inRange[j].Start) })

	perDay := map[string]int{}
	for _, ev := range inRange {
		r.MeetingCount++
		r.TotalMinutes += int(ev.End.Sub(ev.Start) / time.Minute)
		perDay[ev.Start.Format("2006-01-02")]++
	}
	if r.MeetingCount > 0 {
		r.AverageMinutes = r.TotalMinutes / r.MeetingCount
	}

	for dayStr, count := range perDay {
		if count > r.BusiestDayCount {
			r.BusiestDayCount = count
			if d, err := time.Parse("2006-01-02", dayStr); err == nil {
				r.BusiestDay = d.Weekday()
			}
		}
	}

	for i := 1; i < len(inRange); i++ {
		prev, cur := inRange[i-1], inRange[i]
		if sameDay(prev.Start, cur.Start) && !cur.Start.Before(prev.End) && cur.Start.Sub(prev.End) <= backToBackGap {
			r.BackToBackCount++
		}
	}

	return r
}

// Summary renders the report as user-facing text.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Productivity report for %s to %s:\n",
		r.RangeStart.Format("Mon, Jan 2"), r.RangeEnd.AddDate(0, 0, -1).Format("Mon, Jan 2"))
	fmt.Fprintf(&b, "- Meetings: %d\n", r.MeetingCount)
	fmt.Fprintf(&b, "- Time in meetings: %dh %dm\n", r.TotalMinutes/60, r.TotalMinutes%60)
	if r.MeetingCount > 0 {
		fmt.Fprintf(&b, "- Average meeting length: %d minutes\n", r.AverageMinutes)
		fmt.Fprintf(&b, "- Busiest day: %s (%d meetings)\n", r.BusiestDay, r.BusiestDayCount)
	}
	fmt.Fprintf(&b, "- Back-to-back transitions: %d\n", r.BackToBackCount)
	return b.String()
}

// Suggestion is one schedule-optimization recommendation.
type Suggestion struct {
	Kind   string
	Detail string
}

// Optimization thresholds.
const (
	overloadedDayMeetings = 4
	backToBackRunLength   = 3
	focusBlockMinimum     = 2 * time.Hour
	optimizeLookahead     = 5 // working days examined for focus blocks
)

// OptimizeSchedule inspects the upcoming events and proposes adjustments:
// overloaded days, long back-to-back runs, and candidate focus blocks
// drawn from free slots.
func OptimizeSchedule(events []calendar.Event, c Constraints, win Window, now time.Time) []Suggestion {
	var suggestions []Suggestion

	horizon := now.AddDate(0, 0, 14)
	var upcoming []calendar.Event
	for _, ev := range events {
		if !ev.AllDay && ev.Start.After(now) && ev.Start.Before(horizon) {
			upcoming = append(upcoming, ev)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })

	perDay := map[string][]calendar.Event{}
	for _, ev := range upcoming {
		key := ev.Start.Format("2006-01-02")
		perDay[key] = append(perDay[key], ev)
	}

	days := make([]string, 0, len(perDay))
	for key := range perDay {
		days = append(days, key)
	}
	sort.Strings(days)

	for _, key := range days {
		dayEvents := perDay[key]
		if len(dayEvents) > overloadedDayMeetings {
			suggestions = append(suggestions, Suggestion{
				Kind: "overloaded_day",
				Detail: fmt.Sprintf("%s has %d meetings; consider moving some to a lighter day.",
					dayEvents[0].Start.Format("Mon, Jan 2"), len(dayEvents)),
			})
		}

		run := 1
		for i := 1; i < len(dayEvents); i++ {
			if dayEvents[i].Start.Sub(dayEvents[i-1].End) <= backToBackGap {
				run++
				continue
			}
			run = 1
		}
		if run >= backToBackRunLength {
			suggestions = append(suggestions, Suggestion{
				Kind: "back_to_back_run",
				Detail: fmt.Sprintf("%s ends with %d meetings back-to-back; schedule a break between them.",
					dayEvents[0].Start.Format("Mon, Jan 2"), run),
			})
		}
	}

	// Focus blocks: long free slots over the next working days.
	focus := FindFreeSlots(events, c, focusBlockMinimum, now, now.AddDate(0, 0, optimizeLookahead+2), win)
	reported := 0
	for _, slot := range focus {
		if !slot.Start.After(now) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Kind: "focus_block",
			Detail: fmt.Sprintf("Free %s from %s to %s; reserve it for focused work.",
				slot.Start.Format("Mon, Jan 2"), slot.Start.Format("15:04"), slot.End.Format("15:04")),
		})
		reported++
		if reported == 2 {
			break
		}
	}

	return suggestions
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

package schedule

import (
	"sort"
	"strings"
	"time"
)

// Urgency controls how many proposals survive ranking and whether
// soonest-first ordering dominates.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency maps a free-form string onto an Urgency, defaulting to
// medium.
func ParseUrgency(s string) Urgency {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyLow:
		return UrgencyLow
	case UrgencyHigh:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// proposalLimits caps the proposals returned per urgency level.
var proposalLimits = map[Urgency]int{
	UrgencyHigh:   5,
	UrgencyMedium: 3,
	UrgencyLow:    2,
}

// TimeOfDay is a preferred daily band for proposals.
type TimeOfDay string

const (
	TimeOfDayNone      TimeOfDay = ""
	TimeOfDayMorning   TimeOfDay = "morning"   // 09-12
	TimeOfDayAfternoon TimeOfDay = "afternoon" // 13-17
	TimeOfDayEvening   TimeOfDay = "evening"   // 17-19
)

// ParseTimeOfDay maps a free-form string onto a TimeOfDay; unknown values
// mean no preference.
func ParseTimeOfDay(s string) TimeOfDay {
	switch TimeOfDay(strings.ToLower(strings.TrimSpace(s))) {
	case TimeOfDayMorning:
		return TimeOfDayMorning
	case TimeOfDayAfternoon:
		return TimeOfDayAfternoon
	case TimeOfDayEvening:
		return TimeOfDayEvening
	default:
		return TimeOfDayNone
	}
}

// inBand reports whether an hour falls in the preferred band.
func (p TimeOfDay) inBand(hour int) bool {
	switch p {
	case TimeOfDayMorning:
		return hour >= 9 && hour < 12
	case TimeOfDayAfternoon:
		return hour >= 13 && hour < 17
	case TimeOfDayEvening:
		return hour >= 17 && hour < 19
	default:
		return false
	}
}

// Rank orders candidate slots by urgency and time-of-day preference and
// truncates to the urgency's proposal limit. The input is not modified;
// ties not broken by the comparator retain their chronological input
// order (the sort is stable).
//
// Comparator, in priority order: for high urgency, slots more than 24
// hours apart are ordered soonest first; slots inside the preferred
// time-of-day band sort before slots outside it; remaining ties order by
// earlier hour-of-day.
func Rank(slots []Slot, urgency Urgency, pref TimeOfDay) []Slot {
	ranked := append([]Slot(nil), slots...)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if urgency == UrgencyHigh {
			gap := a.Start.Sub(b.Start)
			if gap < 0 {
				gap = -gap
			}
			if gap > 24*time.Hour {
				return a.Start.Before(b.Start)
			}
		}

		if pref != TimeOfDayNone {
			aIn, bIn := pref.inBand(a.Start.Hour()), pref.inBand(b.Start.Hour())
			if aIn != bIn {
				return aIn
			}
		}

		return a.Start.Hour() < b.Start.Hour()
	})

	limit := proposalLimits[urgency]
	if limit == 0 {
		limit = proposalLimits[UrgencyMedium]
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

package schedule

import (
	"time"
)

// Constraints holds the process-wide scheduling configuration. It is
// immutable after construction.
type Constraints struct {
	MinDuration time.Duration
	MaxDuration time.Duration
	WorkingDays map[time.Weekday]bool
	Location    *time.Location
}

// DefaultConstraints returns Monday-through-Friday working days with a
// 15-minute floor and an 8-hour ceiling on meeting length, in local time.
func DefaultConstraints() Constraints {
	return Constraints{
		MinDuration: 15 * time.Minute,
		MaxDuration: 8 * time.Hour,
		WorkingDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		Location: time.Local,
	}
}

// ClampDuration bounds a requested duration to the configured range.
func (c Constraints) ClampDuration(d time.Duration) time.Duration {
	if d < c.MinDuration {
		return c.MinDuration
	}
	if d > c.MaxDuration {
		return c.MaxDuration
	}
	return d
}

// IsWorkingDay reports whether the weekday is eligible for slot search.
func (c Constraints) IsWorkingDay(day time.Weekday) bool {
	return c.WorkingDays[day]
}

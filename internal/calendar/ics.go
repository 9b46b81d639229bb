package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// BuildICS renders the given events as a VCALENDAR text block suitable
// for manual import. Timestamps are emitted in UTC; text-field escaping
// is handled by the serializer.
func BuildICS(events []Event) (string, error) {
	if len(events) == 0 {
		return "", fmt.Errorf("no events to serialize")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)
	cal.SetProductId("-//calassist//EN")

	now := time.Now().UTC()
	for _, ev := range events {
		if ev.ID == "" {
			return "", fmt.Errorf("event %q has no id", ev.Title)
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(now)
		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			ve.SetAllDayEndAt(ev.End)
		} else {
			ve.SetStartAt(ev.Start.UTC())
			ve.SetEndAt(ev.End.UTC())
		}
		if ev.Title != "" {
			ve.SetSummary(ev.Title)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		for _, a := range ev.Attendees {
			ve.AddAttendee(a)
		}
	}

	return cal.Serialize(), nil
}

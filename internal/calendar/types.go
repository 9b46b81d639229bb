package calendar

import (
	"context"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Event is the assistant's view of a calendar event. Events are owned by
// the snapshot: replaced wholesale on refresh, appended on local creation.
type Event struct {
	ID              string
	Title           string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Attendees       []string
	Location        string
	Description     string
	AllDay          bool
}

// HasAttendee reports whether the event lists the given email address,
// compared case-insensitively.
func (e Event) HasAttendee(email string) bool {
	for _, a := range e.Attendees {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// EventInput is the input for creating a calendar event remotely.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
	Recurrence  []string // RRULE, EXRULE, RDATE, EXDATE
	AllDay      bool
}

// CreatedEvent is the canonical event returned by a successful remote
// create call.
type CreatedEvent struct {
	ID        string
	HTMLLink  string
	Start     time.Time
	End       time.Time
	Attendees []string
	Organizer string
}

// Event converts the canonical remote result back into the domain model
// for appending to the snapshot.
func (c CreatedEvent) Event(title, location, description string) Event {
	return Event{
		ID:              c.ID,
		Title:           title,
		Start:           c.Start,
		End:             c.End,
		DurationMinutes: int(c.End.Sub(c.Start) / time.Minute),
		Attendees:       append([]string(nil), c.Attendees...),
		Location:        location,
		Description:     description,
	}
}

// Service is the remote calendar boundary consumed by the assistant.
type Service interface {
	// CreateEvent creates an event remotely and returns the canonical
	// event. Failures are returned as *RemoteError where the status code
	// could be determined.
	CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error)

	// ListEvents lists events within a time range, expanded to single
	// occurrences and ordered by start time.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error)
}

// toEvent converts a Google Calendar event into the domain model.
func toEvent(ev *gcal.Event) Event {
	out := Event{
		ID:          ev.Id,
		Title:       ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
	}

	if ev.Start != nil {
		if ev.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
				out.Start = t
			}
		} else if ev.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", ev.Start.Date); err == nil {
				out.Start = t
				out.AllDay = true
			}
		}
	}
	if ev.End != nil {
		if ev.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
				out.End = t
			}
		} else if ev.End.Date != "" {
			if t, err := time.Parse("2006-01-02", ev.End.Date); err == nil {
				out.End = t
			}
		}
	}
	if !out.Start.IsZero() && !out.End.IsZero() {
		out.DurationMinutes = int(out.End.Sub(out.Start) / time.Minute)
	}

	for _, att := range ev.Attendees {
		if att.Email != "" {
			out.Attendees = append(out.Attendees, att.Email)
		}
	}

	return out
}

package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"calassist/internal/calendar"
	"calassist/internal/email"
	"calassist/internal/logging"
	"calassist/internal/nlparse"
	"calassist/internal/schedule"
)

const defaultDurationMinutes = 60

// NewDefaultRegistry builds the full tool catalog.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&Spec{
		Name:        "calendar_list_events",
		Description: "List calendar events within a date range, optionally filtered by a title query.",
		Params: []Param{
			{Name: "startDate", Type: ParamString, Description: "Range start, YYYY-MM-DD. Defaults to today."},
			{Name: "endDate", Type: ParamString, Description: "Range end, YYYY-MM-DD. Defaults to seven days out."},
			{Name: "query", Type: ParamString, Description: "Case-insensitive title filter."},
		},
		Handler: handleListEvents,
	})

	r.Register(&Spec{
		Name:        "calendar_check_availability",
		Description: "Check whether a time range is free, optionally for specific attendees.",
		Params: []Param{
			{Name: "startTime", Type: ParamString, Required: true, Description: "Range start, RFC 3339 or YYYY-MM-DD HH:MM."},
			{Name: "endTime", Type: ParamString, Description: "Range end. Defaults to startTime plus durationMinutes."},
			{Name: "durationMinutes", Type: ParamNumber, Description: "Range length when endTime is omitted. Defaults to 60."},
			{Name: "attendees", Type: ParamList, Description: "Attendee email addresses to check conflicts for."},
		},
		Handler: handleCheckAvailability,
	})

	r.Register(&Spec{
		Name:        "calendar_find_meeting_times",
		Description: "Propose free meeting slots within a date range, ranked by urgency and time-of-day preference.",
		Params: []Param{
			{Name: "durationMinutes", Type: ParamNumber, Required: true, Description: "Meeting length in minutes."},
			{Name: "startDate", Type: ParamString, Description: "First day to consider, YYYY-MM-DD. Defaults to today."},
			{Name: "endDate", Type: ParamString, Description: "Last day to consider, YYYY-MM-DD. Defaults to five days after startDate."},
			{Name: "attendees", Type: ParamList, Description: "Attendee email addresses; only their conflicts block slots."},
			{Name: "urgency", Type: ParamString, Enum: []string{"low", "medium", "high"}, Description: "How urgently the meeting is needed."},
			{Name: "preferredTimeOfDay", Type: ParamString, Enum: []string{"morning", "afternoon", "evening"}, Description: "Preferred part of the day."},
		},
		Handler: handleFindMeetingTimes,
	})

	r.Register(&Spec{
		Name:        "calendar_create_event",
		Description: "Create a calendar event. Falls back to a browser link plus ICS when the remote call fails.",
		Params: []Param{
			{Name: "title", Type: ParamString, Required: true, Description: "Event title."},
			{Name: "startTime", Type: ParamString, Required: true, Description: "Event start, RFC 3339 or YYYY-MM-DD HH:MM."},
			{Name: "endTime", Type: ParamString, Description: "Event end. Defaults to startTime plus durationMinutes."},
			{Name: "durationMinutes", Type: ParamNumber, Description: "Event length when endTime is omitted. Defaults to 60."},
			{Name: "attendees", Type: ParamList, Description: "Attendee email addresses."},
			{Name: "location", Type: ParamString, Description: "Event location."},
			{Name: "description", Type: ParamString, Description: "Event description."},
			{Name: paramOriginalMessage, Type: ParamString, Description: "The user's original request, used to double-check relative dates."},
		},
		SideEffecting: true,
		DedupeArgs: func(args map[string]any) map[string]any {
			return map[string]any{
				"title":     argString(args, "title"),
				"startTime": argString(args, "startTime"),
				"attendees": StringList(args["attendees"]),
			}
		},
		Handler: handleCreateEvent,
	})

	r.Register(&Spec{
		Name:        "calendar_generate_link",
		Description: "Build a browser calendar link that opens with the event pre-filled.",
		Params: []Param{
			{Name: "title", Type: ParamString, Required: true, Description: "Event title."},
			{Name: "startTime", Type: ParamString, Required: true, Description: "Event start, RFC 3339 or YYYY-MM-DD HH:MM."},
			{Name: "endTime", Type: ParamString, Description: "Event end. Defaults to startTime plus durationMinutes."},
			{Name: "durationMinutes", Type: ParamNumber, Description: "Event length when endTime is omitted. Defaults to 60."},
			{Name: "attendees", Type: ParamList, Description: "Attendee email addresses."},
			{Name: "location", Type: ParamString, Description: "Event location."},
			{Name: "description", Type: ParamString, Description: "Event description."},
			{Name: "recurrence", Type: ParamString, Description: "Optional RRULE, with or without the RRULE: prefix."},
			{Name: paramOriginalMessage, Type: ParamString, Description: "The user's original request, used to double-check relative dates."},
		},
		Handler: handleGenerateLink,
	})

	r.Register(&Spec{
		Name:        "calendar_generate_ics",
		Description: "Produce ICS text for events referenced by id or title, for manual import.",
		Params: []Param{
			{Name: "events", Type: ParamList, Required: true, Description: "Event ids or titles."},
		},
		Handler: handleGenerateICS,
	})

	r.Register(&Spec{
		Name:        "email_draft",
		Description: "Draft a meeting invitation email with a Gmail compose link and a mailto fallback.",
		Params: []Param{
			{Name: "recipients", Type: ParamList, Description: "Recipient email addresses. Resolved from the conversation when omitted."},
			{Name: "subjectHint", Type: ParamString, Description: "Meeting title the draft is about."},
			{Name: "startTime", Type: ParamString, Description: "Meeting start, RFC 3339 or YYYY-MM-DD HH:MM."},
			{Name: "endTime", Type: ParamString, Description: "Meeting end."},
			{Name: "location", Type: ParamString, Description: "Meeting location."},
			{Name: "notes", Type: ParamString, Description: "Extra context to include in the body."},
			{Name: "tone", Type: ParamString, Enum: []string{"formal", "casual", "friendly", "professional"}, Description: "Register of the draft. Defaults to professional."},
			{Name: "context", Type: ParamString, Description: "Conversation context recipients may be named in."},
			{Name: paramOriginalMessage, Type: ParamString, Description: "The user's original request."},
		},
		SideEffecting: true,
		DedupeArgs:    emailDedupeArgs,
		Handler:       handleEmailDraft,
	})

	r.Register(&Spec{
		Name:        "calendar_productivity_report",
		Description: "Summarize meeting load over a time range.",
		Params: []Param{
			{Name: "timeRange", Type: ParamString, Enum: []string{"today", "this_week", "next_week", "this_month"}, Description: "Reporting range. Defaults to this_week."},
		},
		Handler: handleProductivityReport,
	})

	r.Register(&Spec{
		Name:        "calendar_optimize_schedule",
		Description: "Suggest schedule adjustments: overloaded days, back-to-back runs, focus blocks.",
		Handler:     handleOptimizeSchedule,
	})

	return r
}

// emailDedupeArgs reduces a draft call to its equivalence subset: the
// sorted recipient set however it was conveyed, the tone, and the
// subject hint. Two calls naming the same recipients in different ways
// hash the same.
func emailDedupeArgs(args map[string]any) map[string]any {
	recipients := StringList(args["recipients"])
	if len(recipients) == 0 {
		recipients = email.ExtractAddresses(argString(args, "context") + " " + argString(args, paramOriginalMessage))
	}
	sorted := append([]string(nil), recipients...)
	sort.Strings(sorted)
	return map[string]any{
		"recipients": sorted,
		"tone":       string(email.ParseTone(argString(args, "tone"))),
		"subject":    argString(args, "subjectHint"),
	}
}

func handleListEvents(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	now := env.now()
	loc := env.location()

	start, ok := argTime(args, "startDate", loc)
	if !ok {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}
	end, ok := argTime(args, "endDate", loc)
	if !ok {
		end = start.AddDate(0, 0, 7)
	} else {
		end = end.AddDate(0, 0, 1) // endDate is inclusive
	}

	events := env.Snapshot.EventsBetween(start, end)
	if query := argString(args, "query"); query != "" {
		filtered := events[:0]
		for _, ev := range events {
			if strings.Contains(strings.ToLower(ev.Title), strings.ToLower(query)) {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	var b strings.Builder
	if len(events) == 0 {
		b.WriteString("No events found in that range.")
	} else {
		fmt.Fprintf(&b, "Found %d event(s):\n", len(events))
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s: %s", ev.Start.Format("Mon Jan 2 15:04"), ev.Title)
			if ev.Location != "" {
				fmt.Fprintf(&b, " (%s)", ev.Location)
			}
			b.WriteString("\n")
		}
	}

	return &Result{
		Text: b.String(),
		Data: map[string]any{"count": len(events), "events": eventPayload(events)},
	}, nil
}

func handleCheckAvailability(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	loc := env.location()

	start, ok := argTime(args, "startTime", loc)
	if !ok {
		return Failure(NewError(ErrValidation, "startTime is required and must be a parseable timestamp")), nil
	}
	end, ok := argTime(args, "endTime", loc)
	if !ok {
		end = start.Add(time.Duration(argInt(args, "durationMinutes", defaultDurationMinutes)) * time.Minute)
	}
	if !end.After(start) {
		return Failure(NewError(ErrValidation, "endTime must be after startTime")), nil
	}

	attendees := StringList(args["attendees"])
	slot := schedule.CheckAvailability(env.Snapshot.Events(), schedule.Interval{Start: start, End: end}, attendees)

	var text string
	if slot.Available {
		text = fmt.Sprintf("%s to %s is free.", start.Format("Mon Jan 2 15:04"), end.Format("15:04"))
	} else {
		var titles []string
		for _, ev := range slot.Conflicts {
			titles = append(titles, fmt.Sprintf("%q (%s)", ev.Title, ev.Start.Format("15:04")))
		}
		text = fmt.Sprintf("%s to %s conflicts with %s.", start.Format("Mon Jan 2 15:04"), end.Format("15:04"), strings.Join(titles, ", "))
	}

	return &Result{
		Text: text,
		Data: map[string]any{"available": slot.Available, "conflicts": eventPayload(slot.Conflicts)},
	}, nil
}

func handleFindMeetingTimes(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	loc := env.location()
	now := env.now()

	minutes := argInt(args, "durationMinutes", 0)
	if minutes <= 0 {
		return Failure(NewError(ErrValidation, "durationMinutes is required and must be positive")), nil
	}
	duration := env.Constraints.ClampDuration(time.Duration(minutes) * time.Minute)

	startDate, ok := argTime(args, "startDate", loc)
	if !ok {
		startDate = now
	}
	endDate, ok := argTime(args, "endDate", loc)
	if !ok {
		endDate = startDate.AddDate(0, 0, 5)
	}

	// With attendees given, only their conflicts block a slot.
	events := env.Snapshot.Events()
	if attendees := StringList(args["attendees"]); len(attendees) > 0 {
		var relevant []calendar.Event
		for _, ev := range events {
			if schedule.AttendeeConflict(ev, attendees) {
				relevant = append(relevant, ev)
			}
		}
		events = relevant
	}

	slots := schedule.FindFreeSlots(events, env.Constraints, duration, startDate, endDate, env.Window)

	// Past slots are useless proposals.
	upcoming := slots[:0]
	for _, s := range slots {
		if s.Start.After(now) {
			upcoming = append(upcoming, s)
		}
	}

	urgency := schedule.ParseUrgency(argString(args, "urgency"))
	pref := schedule.ParseTimeOfDay(argString(args, "preferredTimeOfDay"))
	ranked := schedule.Rank(upcoming, urgency, pref)

	env.Metrics.RecordSlotsGenerated(ctx, len(ranked))

	if len(ranked) == 0 {
		return &Result{
			Text: "No free slots found in that range.",
			Data: map[string]any{"slots": []map[string]any{}},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Proposed times (%d minutes):\n", int(duration/time.Minute))
	payload := make([]map[string]any, 0, len(ranked))
	for _, s := range ranked {
		fmt.Fprintf(&b, "- %s to %s\n", s.Start.Format("Mon Jan 2 15:04"), s.End.Format("15:04"))
		payload = append(payload, map[string]any{
			"start": s.Start.Format(time.RFC3339),
			"end":   s.End.Format(time.RFC3339),
		})
	}

	return &Result{Text: b.String(), Data: map[string]any{"slots": payload}}, nil
}

func handleCreateEvent(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	title := argString(args, "title")
	if title == "" {
		return Failure(NewError(ErrValidation, "title is required")), nil
	}

	start, end, res := resolveEventTimes(env, args)
	if res != nil {
		return res, nil
	}

	attendees := StringList(args["attendees"])
	location := argString(args, "location")
	description := argString(args, "description")

	input := calendar.EventInput{
		Summary:     title,
		Description: description,
		Location:    location,
		Start:       start,
		End:         end,
		TimeZone:    env.location().String(),
		Attendees:   attendees,
	}

	var warning string
	if env.Service == nil {
		warning = "No calendar account is connected."
	} else {
		created, err := env.Service.CreateEvent(ctx, input)
		if err == nil {
			ev := created.Event(title, location, description)
			env.Snapshot.Append(ev)
			return &Result{
				Text: fmt.Sprintf("Created %q on %s.\n%s", title, start.Format("Mon Jan 2 15:04"), created.HTMLLink),
				Data: map[string]any{
					"state":    "committed",
					"eventId":  created.ID,
					"htmlLink": created.HTMLLink,
				},
			}, nil
		}
		warning = remoteWarning(err)
		env.logger().Warn("remote create failed, degrading to link",
			logging.Operation("create_event"), logging.Err(err))
	}

	// Terminal fallback: synthesize the event locally and hand the user
	// a link plus ICS for manual import. Not retried.
	ev := calendar.Event{
		ID:              uuid.NewString(),
		Title:           title,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Attendees:       attendees,
		Location:        location,
		Description:     description,
	}
	env.Snapshot.Append(ev)

	link, err := calendar.BrowserEventLink(calendar.LinkInput{
		Title:       title,
		Start:       start,
		End:         end,
		Attendees:   attendees,
		Location:    location,
		Description: description,
	})
	if err != nil {
		return Failure(NewError(ErrValidation, "building calendar link: %v", err)), nil
	}
	ics, err := calendar.BuildICS([]calendar.Event{ev})
	if err != nil {
		return Failure(NewError(ErrValidation, "building ICS: %v", err)), nil
	}

	return &Result{
		Text: fmt.Sprintf("%s Add %q manually with this link:\n%s", warning, title, link),
		Data: map[string]any{
			"state":   "fallback_link",
			"eventId": ev.ID,
			"link":    link,
			"ics":     ics,
			"warning": warning,
		},
	}, nil
}

func handleGenerateLink(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	title := argString(args, "title")
	if title == "" {
		return Failure(NewError(ErrValidation, "title is required")), nil
	}

	start, end, res := resolveEventTimes(env, args)
	if res != nil {
		return res, nil
	}

	link, err := calendar.BrowserEventLink(calendar.LinkInput{
		Title:       title,
		Start:       start,
		End:         end,
		Attendees:   StringList(args["attendees"]),
		Location:    argString(args, "location"),
		Description: argString(args, "description"),
		Recurrence:  argString(args, "recurrence"),
	})
	if err != nil {
		return Failure(NewError(ErrValidation, "building calendar link: %v", err)), nil
	}

	return &Result{
		Text: fmt.Sprintf("Open this link to add %q to your calendar:\n%s", title, link),
		Data: map[string]any{"link": link},
	}, nil
}

func handleGenerateICS(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	refs := StringList(args["events"])
	if len(refs) == 0 {
		return Failure(NewError(ErrValidation, "events is required: one or more event ids or titles")), nil
	}

	var events []calendar.Event
	for _, ref := range refs {
		ev, ok := env.Snapshot.ByID(ref)
		if !ok {
			ev, ok = env.Snapshot.ByTitle(ref)
		}
		if !ok {
			return Failure(NewError(ErrNotFound, "no event matching %q", ref).
				WithContext("validTitles", env.Snapshot.Titles())), nil
		}
		events = append(events, ev)
	}

	ics, err := calendar.BuildICS(events)
	if err != nil {
		return Failure(NewError(ErrValidation, "building ICS: %v", err)), nil
	}

	return &Result{
		Text: fmt.Sprintf("ICS for %d event(s):\n%s", len(events), ics),
		Data: map[string]any{"ics": ics, "count": len(events)},
	}, nil
}

func handleEmailDraft(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	resolver := env.Resolver
	if resolver == nil {
		resolver = &email.Resolver{}
	}

	contextText := argString(args, "context")
	original := argString(args, paramOriginalMessage)
	res := resolver.Resolve(StringList(args["recipients"]), contextText, original)

	if res.UsedFallback {
		env.logger().Warn("no recipients resolved, using fallback set",
			logging.Tool("email_draft"), logging.Mode(string(res.Mode)))
	}

	title := argString(args, "subjectHint")
	if title == "" {
		title = "Meeting"
	}
	loc := env.location()
	inv := email.Invitation{
		Title:    title,
		Location: argString(args, "location"),
		Notes:    argString(args, "notes"),
	}
	if start, ok := argTime(args, "startTime", loc); ok {
		inv.Start = start
		if end, ok := argTime(args, "endTime", loc); ok {
			inv.End = end
		} else {
			inv.End = start.Add(time.Duration(argInt(args, "durationMinutes", defaultDurationMinutes)) * time.Minute)
		}
	}

	tone := email.ParseTone(argString(args, "tone"))
	drafts := email.Compose(res, inv, tone)
	env.Metrics.RecordEmailDrafts(ctx, string(res.Mode), len(drafts))

	var b strings.Builder
	if res.UsedFallback {
		b.WriteString("I couldn't tell who this should go to, so I used the default recipients.\n\n")
	}
	payload := make([]map[string]any, 0, len(drafts))
	for i, d := range drafts {
		if len(drafts) > 1 {
			fmt.Fprintf(&b, "Draft %d of %d, to %s:\n", i+1, len(drafts), strings.Join(d.To, ", "))
		} else {
			fmt.Fprintf(&b, "Draft to %s:\n", strings.Join(d.To, ", "))
		}
		fmt.Fprintf(&b, "Subject: %s\n\n%s\nCompose: %s\n\n", d.Subject, d.Body, d.GmailLink)
		payload = append(payload, map[string]any{
			"to":      d.To,
			"subject": d.Subject,
			"body":    d.Body,
			"gmail":   d.GmailLink,
			"mailto":  d.MailtoLink,
		})
	}

	data := map[string]any{
		"mode":         string(res.Mode),
		"recipients":   res.Recipients,
		"usedFallback": res.UsedFallback,
		"drafts":       payload,
	}
	if res.UsedFallback {
		data["errorKind"] = string(ErrAmbiguousIntent)
	}

	return &Result{Text: strings.TrimRight(b.String(), "\n"), Data: data}, nil
}

func handleProductivityReport(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	kind := schedule.RangeKind(argString(args, "timeRange"))
	if kind == "" {
		kind = schedule.RangeThisWeek
	}

	start, end, err := schedule.ResolveRange(kind, env.now(), env.location())
	if err != nil {
		return Failure(NewError(ErrValidation, "%v", err)), nil
	}

	report := schedule.BuildReport(env.Snapshot.Events(), start, end)
	return &Result{
		Text: report.Summary(),
		Data: map[string]any{
			"meetingCount":    report.MeetingCount,
			"totalMinutes":    report.TotalMinutes,
			"averageMinutes":  report.AverageMinutes,
			"busiestDay":      report.BusiestDay.String(),
			"backToBackCount": report.BackToBackCount,
		},
	}, nil
}

func handleOptimizeSchedule(ctx context.Context, env *Env, args map[string]any) (*Result, error) {
	suggestions := schedule.OptimizeSchedule(env.Snapshot.Events(), env.Constraints, env.Window, env.now())

	if len(suggestions) == 0 {
		return &Result{Text: "Your schedule looks balanced; nothing to adjust."}, nil
	}

	var b strings.Builder
	b.WriteString("Schedule suggestions:\n")
	payload := make([]map[string]any, 0, len(suggestions))
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- %s\n", s.Detail)
		payload = append(payload, map[string]any{"kind": s.Kind, "detail": s.Detail})
	}

	return &Result{Text: b.String(), Data: map[string]any{"suggestions": payload}}, nil
}

// resolveEventTimes derives the event start and end from the arguments,
// recomputing against the original user message when the proposed start
// looks like a model artifact. A non-nil Result is a validation failure.
func resolveEventTimes(env *Env, args map[string]any) (time.Time, time.Time, *Result) {
	loc := env.location()
	now := env.now()
	original := argString(args, paramOriginalMessage)
	startRaw := argString(args, "startTime")

	if nlparse.ShouldRecalculate(startRaw, original, now) {
		if r := nlparse.Recompute(original, now); r != nil {
			env.logger().Info("recomputed event time from user message",
				logging.Operation("date_recalculation"))
			return r.Start, r.End, nil
		}
	}

	start, ok := argTime(args, "startTime", loc)
	if !ok {
		return time.Time{}, time.Time{}, Failure(NewError(ErrValidation, "startTime is required and must be a parseable timestamp"))
	}
	end, ok := argTime(args, "endTime", loc)
	if !ok {
		minutes := argInt(args, "durationMinutes", defaultDurationMinutes)
		end = start.Add(env.Constraints.ClampDuration(time.Duration(minutes) * time.Minute))
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, Failure(NewError(ErrValidation, "endTime must be after startTime"))
	}
	return start, end, nil
}

// remoteWarning maps a remote failure to its user-facing message.
func remoteWarning(err error) string {
	var remote *calendar.RemoteError
	if errors.As(err, &remote) {
		return remote.UserMessage()
	}
	return "The calendar service could not be reached."
}

// eventPayload renders events for the structured result payload.
func eventPayload(events []calendar.Event) []map[string]any {
	out := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		out = append(out, map[string]any{
			"id":    ev.ID,
			"title": ev.Title,
			"start": ev.Start.Format(time.RFC3339),
			"end":   ev.End.Format(time.RFC3339),
		})
	}
	return out
}

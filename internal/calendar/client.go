package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"calassist/internal/google"
	"calassist/internal/instrumentation"
)

// Client wraps the Google Calendar service and implements Service.
type Client struct {
	svc     *gcal.Service
	account string
	metrics *instrumentation.Metrics
}

// NewClientForAccountWithProvider creates a Calendar client authenticated
// for a specific account using the given token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1; the Calendar API intermittently resets HTTP/2 streams.
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{ForceAttemptHTTP2: false}
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc, account: account}, nil
}

// NewClientForAccount creates a Calendar client for a specific account
// using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// WithMetrics attaches a metrics recorder for remote operations.
func (c *Client) WithMetrics(m *instrumentation.Metrics) *Client {
	c.metrics = m
	return c
}

// HasToken checks if a valid OAuth token exists for the given account.
func HasToken(account string) bool {
	return google.HasTokenForAccount(account)
}

// CreateEvent creates a new event on the primary calendar.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error) {
	event := &gcal.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
	}

	if input.AllDay {
		event.Start = &gcal.EventDateTime{Date: input.Start.Format("2006-01-02")}
		event.End = &gcal.EventDateTime{Date: input.End.Format("2006-01-02")}
	} else {
		tz := input.TimeZone
		if tz == "" {
			tz = "UTC"
		}
		event.Start = &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		}
		event.End = &gcal.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		}
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{Email: email})
	}
	if len(input.Recurrence) > 0 {
		event.Recurrence = input.Recurrence
	}

	start := time.Now()
	created, err := c.svc.Events.Insert("primary", event).Context(ctx).Do()
	c.recordOp(ctx, "create", err, time.Since(start))
	if err != nil {
		return nil, classifyError("create", err)
	}

	out := &CreatedEvent{
		ID:       created.Id,
		HTMLLink: created.HtmlLink,
	}
	if created.Organizer != nil {
		out.Organizer = created.Organizer.Email
	}
	for _, att := range created.Attendees {
		out.Attendees = append(out.Attendees, att.Email)
	}
	if created.Start != nil && created.Start.DateTime != "" {
		if t, perr := time.Parse(time.RFC3339, created.Start.DateTime); perr == nil {
			out.Start = t
		}
	}
	if created.End != nil && created.End.DateTime != "" {
		if t, perr := time.Parse(time.RFC3339, created.End.DateTime); perr == nil {
			out.End = t
		}
	}
	if out.Start.IsZero() {
		out.Start = input.Start
	}
	if out.End.IsZero() {
		out.End = input.End
	}

	return out, nil
}

// ListEvents lists events on the primary calendar within a time range,
// expanded to single occurrences and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	start := time.Now()
	events, err := c.svc.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	c.recordOp(ctx, "list", err, time.Since(start))
	if err != nil {
		return nil, classifyError("list", err)
	}

	out := make([]Event, 0, len(events.Items))
	for _, item := range events.Items {
		out = append(out, toEvent(item))
	}
	return out, nil
}

func (c *Client) recordOp(ctx context.Context, op string, err error, d time.Duration) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordCalendarOperation(ctx, op, status, d)
}

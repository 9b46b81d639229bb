package assistant

import (
	"log/slog"
	"time"

	"calassist/internal/calendar"
	"calassist/internal/email"
	"calassist/internal/instrumentation"
	"calassist/internal/schedule"
)

// Env is the explicit context object handlers receive: the event
// snapshot, the scheduling configuration and the collaborators. There
// are no package-level singletons; everything a handler touches comes
// through here.
type Env struct {
	// Snapshot is the in-memory event list. Calls are processed one at
	// a time against it.
	Snapshot *calendar.Snapshot

	// Service is the remote calendar boundary. Nil when no account is
	// authenticated; event creation then degrades straight to the
	// fallback link path.
	Service calendar.Service

	// Account is the authenticated account label, for audit entries.
	Account string

	Constraints schedule.Constraints
	Window      schedule.Window

	Resolver *email.Resolver

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Audit   *instrumentation.AuditLogger

	// NowFunc overrides the clock, for tests.
	NowFunc func() time.Time
}

func (e *Env) now() time.Time {
	if e.NowFunc != nil {
		return e.NowFunc()
	}
	return time.Now()
}

func (e *Env) location() *time.Location {
	if e.Constraints.Location != nil {
		return e.Constraints.Location
	}
	return time.Local
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

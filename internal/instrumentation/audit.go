package instrumentation

import (
	"log/slog"
	"time"
)

// ToolInvocation captures information about a single tool invocation for
// audit logging. It provides an audit trail for every call the router
// dispatches, including calls answered from the duplicate-call cache.
type ToolInvocation struct {
	// Tool name as registered in the catalog.
	Tool string

	// Account the call was made against.
	Account string

	// Execution details.
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Deduped   bool
	Error     string
}

// NewToolInvocation creates an invocation record with the start time set.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{Tool: tool, StartTime: time.Now()}
}

// WithAccount sets the account on the invocation record.
func (ti *ToolInvocation) WithAccount(account string) *ToolInvocation {
	ti.Account = account
	return ti
}

// Complete marks the invocation finished with the given outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteDeduped marks the invocation as answered from the duplicate cache.
func (ti *ToolInvocation) CompleteDeduped() *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = true
	ti.Deduped = true
	return ti
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured audit logging.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Account != "" && ti.Account != "default" {
		attrs = append(attrs, slog.String("account", ti.Account))
	}
	if ti.Deduped {
		attrs = append(attrs, slog.Bool("deduped", true))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// AuditLogger writes tool invocation records to a structured log stream.
// A nil *AuditLogger is a valid no-op logger.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an audit logger writing to the given slog.Logger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes one invocation record.
func (a *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if a == nil || a.logger == nil || ti == nil {
		return
	}
	args := make([]any, 0, 12)
	for _, attr := range ti.LogAttrs() {
		args = append(args, attr)
	}
	a.logger.Info("tool invocation", args...)
}

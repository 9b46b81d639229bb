package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestToolInvocationComplete(t *testing.T) {
	ti := NewToolInvocation("calendar_create_event")
	if ti.StartTime.IsZero() {
		t.Fatal("expected start time to be set")
	}

	ti.Complete(false, errors.New("boom"))
	if ti.Success {
		t.Error("expected failed invocation")
	}
	if ti.Error != "boom" {
		t.Errorf("Error = %q, want boom", ti.Error)
	}
	if ti.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusError)
	}
	if ti.Duration < 0 {
		t.Errorf("negative duration %v", ti.Duration)
	}
}

func TestToolInvocationDeduped(t *testing.T) {
	ti := NewToolInvocation("email_draft").CompleteDeduped()
	if !ti.Success || !ti.Deduped {
		t.Errorf("CompleteDeduped: Success=%v Deduped=%v", ti.Success, ti.Deduped)
	}

	found := false
	for _, attr := range ti.LogAttrs() {
		if attr.Key == "deduped" {
			found = true
		}
	}
	if !found {
		t.Error("LogAttrs missing deduped attribute")
	}
}

func TestAuditLoggerNilSafe(t *testing.T) {
	var a *AuditLogger
	// Must not panic.
	a.LogToolInvocation(NewToolInvocation("x").Complete(true, nil))
}

func TestAuditLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a := NewAuditLogger(logger)
	ti := &ToolInvocation{
		Tool:      "calendar_find_meeting_times",
		StartTime: time.Now(),
		Success:   true,
		Account:   "work",
	}
	a.LogToolInvocation(ti)

	out := buf.String()
	for _, want := range []string{"tool invocation", "calendar_find_meeting_times", "account=work"} {
		if !strings.Contains(out, want) {
			t.Errorf("audit output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	ctx := t.Context()
	// None of these may panic on a nil receiver.
	m.RecordToolInvocation(ctx, "x", StatusSuccess, time.Second)
	m.RecordDuplicateSuppression(ctx, "x")
	m.RecordCalendarOperation(ctx, "create", StatusError, time.Second)
	m.RecordSlotsGenerated(ctx, 3)
	m.RecordEmailDrafts(ctx, "group", 1)
}

package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrTool      = "tool"
	attrStatus    = "status"
	attrOperation = "operation"
	attrMode      = "mode"
)

// Metrics provides methods for recording observability metrics.
// A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	toolInvocationsTotal  metric.Int64Counter
	toolDuration          metric.Float64Histogram
	duplicateSuppressions metric.Int64Counter
	calendarOpsTotal      metric.Int64Counter
	calendarOpDuration    metric.Float64Histogram
	slotsGenerated        metric.Int64Counter
	emailDraftsTotal      metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"assistant_tool_invocations_total",
		metric.WithDescription("Total number of tool invocations routed by the assistant"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"assistant_tool_duration_seconds",
		metric.WithDescription("Tool handler execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant_tool_duration_seconds histogram: %w", err)
	}

	m.duplicateSuppressions, err = meter.Int64Counter(
		"assistant_duplicate_suppressions_total",
		metric.WithDescription("Side-effecting calls answered from the duplicate-call cache"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant_duplicate_suppressions_total counter: %w", err)
	}

	m.calendarOpsTotal, err = meter.Int64Counter(
		"calendar_remote_operations_total",
		metric.WithDescription("Total number of remote calendar API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_remote_operations_total counter: %w", err)
	}

	m.calendarOpDuration, err = meter.Float64Histogram(
		"calendar_remote_operation_duration_seconds",
		metric.WithDescription("Remote calendar API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_remote_operation_duration_seconds histogram: %w", err)
	}

	m.slotsGenerated, err = meter.Int64Counter(
		"scheduler_slots_generated_total",
		metric.WithDescription("Candidate time slots produced by the slot search"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler_slots_generated_total counter: %w", err)
	}

	m.emailDraftsTotal, err = meter.Int64Counter(
		"assistant_email_drafts_total",
		metric.WithDescription("Email drafts produced, labeled by delivery mode"),
		metric.WithUnit("{draft}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant_email_drafts_total counter: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records a tool invocation with its status and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDuplicateSuppression records a call served from the duplicate cache.
func (m *Metrics) RecordDuplicateSuppression(ctx context.Context, tool string) {
	if m == nil || m.duplicateSuppressions == nil {
		return
	}
	m.duplicateSuppressions.Add(ctx, 1, metric.WithAttributes(attribute.String(attrTool, tool)))
}

// RecordCalendarOperation records a remote calendar API operation.
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.calendarOpsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.calendarOpsTotal.Add(ctx, 1, attrs)
	m.calendarOpDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSlotsGenerated records the number of candidate slots produced.
func (m *Metrics) RecordSlotsGenerated(ctx context.Context, count int) {
	if m == nil || m.slotsGenerated == nil {
		return
	}
	m.slotsGenerated.Add(ctx, int64(count))
}

// RecordEmailDrafts records drafts produced for a delivery mode.
func (m *Metrics) RecordEmailDrafts(ctx context.Context, mode string, count int) {
	if m == nil || m.emailDraftsTotal == nil {
		return
	}
	m.emailDraftsTotal.Add(ctx, int64(count), metric.WithAttributes(attribute.String(attrMode, mode)))
}

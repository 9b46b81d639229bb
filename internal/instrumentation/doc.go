// Package instrumentation provides OpenTelemetry-based observability for
// the assistant: metrics for tool invocations, duplicate-call suppression
// and remote calendar operations, plus an audit log of every tool call.
//
// Metrics can be exported via Prometheus (default), OTLP or stdout. All
// recording methods are nil-safe so call sites never need to guard against
// an unconfigured provider.
package instrumentation

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordMessage does nothing.
func (NoopMetrics) RecordMessage(_ context.Context, _ time.Duration, _ error) {}

// RecordCommand does nothing.
func (NoopMetrics) RecordCommand(_ context.Context, _ string, _ bool) {}

// RecordFilterEvaluation does nothing.
func (NoopMetrics) RecordFilterEvaluation(_ context.Context, _ bool, _ time.Duration) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartMessageSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartMessageSpan(ctx context.Context, _ int64, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartFilterSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartFilterSpan(ctx context.Context, _ int64) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}

package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records chatward metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMessage records one handled message with its duration and error status.
	RecordMessage(ctx context.Context, duration time.Duration, err error)

	// RecordCommand records a processed command and whether it succeeded.
	RecordCommand(ctx context.Context, command string, success bool)

	// RecordFilterEvaluation records a filter evaluation and whether it matched.
	RecordFilterEvaluation(ctx context.Context, matched bool, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	messages       metric.Int64Counter
	messageLatency metric.Float64Histogram
	messageErrors  metric.Int64Counter
	commands       metric.Int64Counter
	filterEvals    metric.Int64Counter
	filterLatency  metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("chatward")

	messages, err := meter.Int64Counter("chatward.messages",
		metric.WithDescription("Number of handled messages"),
	)
	if err != nil {
		return nil, err
	}

	messageLatency, err := meter.Float64Histogram("chatward.message.latency_ms",
		metric.WithDescription("Message handling latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	messageErrors, err := meter.Int64Counter("chatward.message.errors",
		metric.WithDescription("Number of message handling errors"),
	)
	if err != nil {
		return nil, err
	}

	commands, err := meter.Int64Counter("chatward.commands",
		metric.WithDescription("Number of processed commands"),
	)
	if err != nil {
		return nil, err
	}

	filterEvals, err := meter.Int64Counter("chatward.filter.evaluations",
		metric.WithDescription("Number of filter evaluations"),
	)
	if err != nil {
		return nil, err
	}

	filterLatency, err := meter.Float64Histogram("chatward.filter.latency_ms",
		metric.WithDescription("Filter evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		messages:       messages,
		messageLatency: messageLatency,
		messageErrors:  messageErrors,
		commands:       commands,
		filterEvals:    filterEvals,
		filterLatency:  filterLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordMessage records one handled message.
func (m *otelMetrics) RecordMessage(ctx context.Context, duration time.Duration, err error) {
	m.messages.Add(ctx, 1)
	m.messageLatency.Record(ctx, float64(duration.Milliseconds()))
	if err != nil {
		m.messageErrors.Add(ctx, 1)
	}
}

// RecordCommand records a processed command.
func (m *otelMetrics) RecordCommand(ctx context.Context, command string, success bool) {
	m.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.Bool("success", success),
	))
}

// RecordFilterEvaluation records a filter evaluation.
func (m *otelMetrics) RecordFilterEvaluation(ctx context.Context, matched bool, duration time.Duration) {
	m.filterEvals.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("matched", matched),
	))
	m.filterLatency.Record(ctx, float64(duration.Milliseconds()))
}

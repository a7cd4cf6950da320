package observability

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the chatward tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("chatward")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartMessageSpan starts a span for handling one incoming message.
	// Returns the context with span and the span itself.
	StartMessageSpan(ctx context.Context, chatID int64, updateID string) (context.Context, trace.Span)

	// StartFilterSpan starts a span for a filter evaluation.
	// The filter span should be a child of the message span.
	StartFilterSpan(ctx context.Context, chatID int64) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartMessageSpan starts a span for handling one incoming message.
func (m *otelSpanManager) StartMessageSpan(ctx context.Context, chatID int64, updateID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "chatward.message",
		trace.WithAttributes(
			attribute.Int64("chat.id", chatID),
			attribute.String("update.id", updateID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartFilterSpan starts a span for a filter evaluation.
func (m *otelSpanManager) StartFilterSpan(ctx context.Context, chatID int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "chatward.filter."+strconv.FormatInt(chatID, 10),
		trace.WithAttributes(
			attribute.Int64("chat.id", chatID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/healthcheckx/health"
)

// SpanName returns the span name used for a probe check.
func SpanName(probe string) string {
	return "health.probe." + probe
}

// Tracer wraps OpenTelemetry tracing with probe-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a span for one probe check.
	StartSpan(ctx context.Context, probe string) (context.Context, trace.Span)

	// EndSpan records the check outcome and ends the span.
	EndSpan(span trace.Span, res health.Result, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer backed by t.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, probe string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanName(probe),
		trace.WithAttributes(attribute.String("probe.name", probe)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, res health.Result, err error) {
	status := res.Status
	if err != nil {
		status = health.StatusUnhealthy
	}
	span.SetAttributes(attribute.String("probe.status", status.String()))

	switch {
	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	case status == health.StatusUnhealthy:
		msg, _ := res.MessageText()
		span.SetStatus(codes.Error, msg)
	default:
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

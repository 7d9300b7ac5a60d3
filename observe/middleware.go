package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/healthcheckx/health"
)

// Middleware wraps probes with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap returns probes safe for concurrent use.
//   - Context: the span context is passed to the wrapped probe.
//   - Errors: results and errors from the wrapped probe are returned unchanged.
//     Panics are recorded and re-raised for the runner to convert.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Wrap returns p instrumented. Its signature matches health.Middleware.
func (m *Middleware) Wrap(p health.Probe) health.Probe {
	return &instrumented{m: m, probe: p}
}

type instrumented struct {
	m     *Middleware
	probe health.Probe
}

func (i *instrumented) Name() string {
	return i.probe.Name()
}

func (i *instrumented) Check(ctx context.Context) (res health.Result, err error) {
	name := i.probe.Name()
	ctx, span := i.m.tracer.StartSpan(ctx, name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			perr := fmt.Errorf("%w: %v", health.ErrProbePanic, r)
			i.finish(ctx, span, name, health.Result{}, perr, time.Since(start))
			panic(r)
		}
	}()

	res, err = i.probe.Check(ctx)
	i.finish(ctx, span, name, res, err, time.Since(start))
	return res, err
}

func (i *instrumented) finish(ctx context.Context, span trace.Span, name string, res health.Result, err error, d time.Duration) {
	i.m.tracer.EndSpan(span, res, err)

	status := res.Status
	if err != nil {
		status = health.StatusUnhealthy
	}
	i.m.metrics.RecordCheck(ctx, name, status, d, err)

	logger := i.m.logger.WithProbe(name)
	fields := []Field{
		{Key: "status", Value: status.String()},
		{Key: "duration_ms", Value: float64(d) / float64(time.Millisecond)},
	}
	if msg, ok := res.MessageText(); ok {
		fields = append(fields, Field{Key: "message", Value: msg})
	}

	switch {
	case err != nil:
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, "probe check failed", fields...)
	case status == health.StatusUnhealthy:
		logger.Error(ctx, "probe unhealthy", fields...)
	case status == health.StatusDegraded:
		logger.Warn(ctx, "probe degraded", fields...)
	default:
		logger.Debug(ctx, "probe healthy", fields...)
	}
}

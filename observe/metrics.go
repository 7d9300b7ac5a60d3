package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/healthcheckx/health"
)

// Metric names.
const (
	MetricChecks   = "health.probe.checks"
	MetricFailures = "health.probe.failures"
	MetricDuration = "health.probe.duration_ms"
)

// Metrics records probe check metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCheck records one check. A check fails when err is non-nil or
	// status is unhealthy.
	RecordCheck(ctx context.Context, probe string, status health.Status, duration time.Duration, err error)
}

type metricsImpl struct {
	checks   metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates the probe instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	checks, err := meter.Int64Counter(MetricChecks,
		metric.WithDescription("Total number of probe checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(MetricFailures,
		metric.WithDescription("Total number of failed probe checks"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Probe check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{checks: checks, failures: failures, duration: duration}, nil
}

func (m *metricsImpl) RecordCheck(ctx context.Context, probe string, status health.Status, duration time.Duration, err error) {
	if err != nil {
		status = health.StatusUnhealthy
	}
	opt := metric.WithAttributes(
		attribute.String("probe.name", probe),
		attribute.String("probe.status", status.String()),
	)

	m.checks.Add(ctx, 1, opt)
	if status == health.StatusUnhealthy {
		m.failures.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

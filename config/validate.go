package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonwraymond/healthcheckx/observe"
)

// Validate checks configuration correctness. It reports every problem found
// and does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if cfg.MaxConcurrency < 0 {
		add("max_concurrency must not be negative, got %d", cfg.MaxConcurrency)
	}
	if cfg.Logging.Level != "" && !slices.Contains(observe.ValidLogLevels, cfg.Logging.Level) {
		add("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if cfg.Tracing.Exporter != "" && !slices.Contains(observe.ValidTracingExporters, cfg.Tracing.Exporter) {
		add("tracing.exporter %q is not supported", cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SamplePct < observe.MinSamplePct || cfg.Tracing.SamplePct > observe.MaxSamplePct {
		add("tracing.sample_pct must be between 0 and 1, got %g", cfg.Tracing.SamplePct)
	}
	if cfg.Metrics.Exporter != "" && !slices.Contains(observe.ValidMetricsExporters, cfg.Metrics.Exporter) {
		add("metrics.exporter %q is not supported", cfg.Metrics.Exporter)
	}

	for i, p := range cfg.Probes {
		where := fmt.Sprintf("probes[%d]", i)
		if p.Name != "" {
			where = fmt.Sprintf("probes[%d] (%s)", i, p.Name)
		}

		if p.Type == "" {
			add("%s: type is required", where)
		}
		if p.Timeout < 0 {
			add("%s: timeout must not be negative", where)
		}
		if g := p.Guard; g != nil {
			if g.Timeout < 0 || g.RetryDelay < 0 || g.CacheTTL < 0 || g.BreakerReset < 0 {
				add("%s: guard durations must not be negative", where)
			}
			if g.Retries < 0 {
				add("%s: guard.retries must not be negative", where)
			}
			if g.BreakerFailures < 0 {
				add("%s: guard.breaker_failures must not be negative", where)
			}
		}
	}

	return errors.Join(errs...)
}

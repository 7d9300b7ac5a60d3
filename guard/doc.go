// Package guard decorates probes with timeouts, retries, a circuit breaker
// and result caching.
//
// Each guard wraps a health.Probe and returns a health.Probe with the same
// name, so guarded probes register like any other:
//
//	p := guard.Wrap(redis.New(redis.Config{URL: url}),
//	    guard.WithCache(10*time.Second),
//	    guard.WithCircuitBreaker(guard.CircuitBreakerConfig{MaxFailures: 3}),
//	    guard.WithRetry(guard.RetryConfig{MaxAttempts: 2}),
//	    guard.WithTimeout(3*time.Second),
//	)
//	h.Register(p)
//
// Wrap applies the guards from the outside in: cache, circuit breaker,
// retry, timeout. The stateless guards (Timeout, Retry) also satisfy
// health.Middleware through their Wrap methods and may be installed on a
// whole registry via health.Config.Middleware. CircuitBreaker and Cache keep
// per-probe state and must wrap one probe each.
//
// A check counts as failed when it returns an error or an unhealthy result.
package guard

import (
	"context"

	"github.com/jonwraymond/healthcheckx/health"
)

// checkFunc is the shape of Probe.Check.
type checkFunc func(context.Context) (health.Result, error)

// guarded is a probe whose Check is replaced but whose name is kept.
type guarded struct {
	name  string
	check checkFunc
}

func (g *guarded) Name() string {
	return g.name
}

func (g *guarded) Check(ctx context.Context) (health.Result, error) {
	return g.check(ctx)
}

func failed(res health.Result, err error) bool {
	return err != nil || res.Status == health.StatusUnhealthy
}

// withDetail returns res with key set in a copy of its details.
func withDetail(res health.Result, key string, value any) health.Result {
	details := make(map[string]any, len(res.Details)+1)
	for k, v := range res.Details {
		details[k] = v
	}
	details[key] = value
	return res.WithDetails(details)
}

package guard

import (
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

// Option configures Wrap.
type Option func(*chain)

type chain struct {
	cache   *Cache
	breaker *CircuitBreaker
	retry   *Retry
	timeout *Timeout
}

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *chain) {
		c.timeout = NewTimeout(TimeoutConfig{Timeout: d})
	}
}

// WithRetry retries failed checks.
func WithRetry(config RetryConfig) Option {
	return func(c *chain) {
		c.retry = NewRetry(config)
	}
}

// WithCircuitBreaker adds a circuit breaker owned by the wrapped probe.
func WithCircuitBreaker(config CircuitBreakerConfig) Option {
	return func(c *chain) {
		c.breaker = NewCircuitBreaker(config)
	}
}

// WithBreaker adds an existing circuit breaker, for callers that want to
// observe or reset it.
func WithBreaker(cb *CircuitBreaker) Option {
	return func(c *chain) {
		c.breaker = cb
	}
}

// WithCache reuses results for ttl.
func WithCache(ttl time.Duration) Option {
	return func(c *chain) {
		c.cache = NewCache(ttl)
	}
}

// Wrap decorates p with the configured guards. The order is fixed regardless
// of option order:
//  1. Cache (outermost) - answers from the last outcome while fresh
//  2. Circuit breaker - skips the dependency while open
//  3. Retry - re-runs failed attempts
//  4. Timeout (innermost) - bounds each attempt
func Wrap(p health.Probe, opts ...Option) health.Probe {
	if p == nil {
		return nil
	}

	var c chain
	for _, opt := range opts {
		opt(&c)
	}

	if c.timeout != nil {
		p = c.timeout.Wrap(p)
	}
	if c.retry != nil {
		p = c.retry.Wrap(p)
	}
	if c.breaker != nil {
		p = c.breaker.Wrap(p)
	}
	if c.cache != nil {
		p = c.cache.Wrap(p)
	}
	return p
}

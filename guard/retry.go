package guard

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

// BackoffStrategy defines how delays increase between retries.
type BackoffStrategy int

const (
	// BackoffExponential multiplies the delay each attempt.
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear increases delay linearly.
	BackoffLinear
	// BackoffConstant uses the same delay for all retries.
	BackoffConstant
)

// RetryConfig configures the retry guard.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 2
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 2s
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier for exponential backoff.
	// Default: 2.0
	Multiplier float64

	// Strategy is the backoff strategy.
	// Default: BackoffExponential
	Strategy BackoffStrategy

	// Jitter adds up to 25% randomness to delays.
	Jitter bool

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, res health.Result, err error, delay time.Duration)
}

// Retry re-runs failed checks. A dependency that recovers within the retry
// budget is reported from the last attempt, with the attempt count in
// Details["attempts"].
type Retry struct {
	config RetryConfig
}

// NewRetry creates a new retry guard.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 2
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 2 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	return &Retry{config: config}
}

// Config returns the retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}

// Wrap returns p with retries.
func (r *Retry) Wrap(p health.Probe) health.Probe {
	return &guarded{name: p.Name(), check: func(ctx context.Context) (health.Result, error) {
		return r.execute(ctx, p.Check)
	}}
}

func (r *Retry) execute(ctx context.Context, check checkFunc) (health.Result, error) {
	var (
		res health.Result
		err error
	)

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		res, err = check(ctx)
		if !failed(res, err) {
			if attempt > 1 {
				res = withDetail(res, "attempts", attempt)
			}
			return res, nil
		}

		if attempt >= r.config.MaxAttempts {
			break
		}

		delay := r.calculateDelay(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, res, err, delay)
		}

		select {
		case <-ctx.Done():
			return res, err
		case <-time.After(delay):
		}
	}

	if err == nil && r.config.MaxAttempts > 1 {
		res = withDetail(res, "attempts", r.config.MaxAttempts)
	}
	return res, err
}

func (r *Retry) calculateDelay(attempt int) time.Duration {
	var delay time.Duration

	switch r.config.Strategy {
	case BackoffConstant:
		delay = r.config.InitialDelay
	case BackoffLinear:
		delay = r.config.InitialDelay * time.Duration(attempt)
	default:
		delay = time.Duration(float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, float64(attempt-1)))
	}

	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter && delay >= 4 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}
	return delay
}

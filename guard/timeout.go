package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

// TimeoutConfig configures the timeout guard.
type TimeoutConfig struct {
	// Timeout is the maximum duration of one check.
	// Default: 5 seconds
	Timeout time.Duration
}

// Timeout bounds the duration of a check.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout guard.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Timeout{config: config}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// Wrap returns p bounded by the timeout. A check that overruns returns
// ErrTimeout; the probe keeps running in the background until it observes
// its cancelled context.
func (t *Timeout) Wrap(p health.Probe) health.Probe {
	return &guarded{name: p.Name(), check: func(ctx context.Context) (health.Result, error) {
		return t.execute(ctx, p.Check)
	}}
}

type outcome struct {
	res health.Result
	err error
}

func (t *Timeout) execute(ctx context.Context, check checkFunc) (health.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	done := make(chan outcome, 1)

	go func() {
		defer func() {
			// The runner cannot recover panics from this goroutine.
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", health.ErrProbePanic, r)}
			}
		}()
		res, err := check(ctx)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return health.Result{}, fmt.Errorf("%w after %s", ErrTimeout, t.config.Timeout)
		}
		return health.Result{}, ctx.Err()
	}
}

package guard

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means checks run normally.
	StateClosed State = iota
	// StateOpen means checks are skipped and reported unhealthy.
	StateOpen
	// StateHalfOpen means one trial check is allowed through.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failed checks that opens the
	// circuit.
	// Default: 3
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before a trial check.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// CircuitBreaker stops hammering a dependency that keeps failing. While
// open, the wrapped probe is not called and ErrCircuitOpen is returned.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	trial       bool
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 3
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	return &CircuitBreaker{config: config, state: StateClosed}
}

// Wrap returns p behind the breaker. One breaker should guard one probe.
func (cb *CircuitBreaker) Wrap(p health.Probe) health.Probe {
	return &guarded{name: p.Name(), check: func(ctx context.Context) (health.Result, error) {
		return cb.execute(ctx, p.Check)
	}}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// Reset closes the circuit and clears the failure count.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.trial = false
	cb.transitionLocked(StateClosed)
}

func (cb *CircuitBreaker) execute(ctx context.Context, check checkFunc) (health.Result, error) {
	if err := cb.before(); err != nil {
		return health.Result{}, err
	}

	defer func() {
		// A panicking check still settles the breaker, then keeps unwinding.
		if r := recover(); r != nil {
			cb.after(true)
			panic(r)
		}
	}()

	res, err := check(ctx)
	cb.after(failed(res, err))
	return res, err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if cb.trial {
			return ErrCircuitOpen
		}
		cb.trial = true
	}
	return nil
}

func (cb *CircuitBreaker) after(isFailure bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		if !isFailure {
			cb.failures = 0
			return
		}
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.failures >= cb.config.MaxFailures {
			cb.transitionLocked(StateOpen)
		}

	case StateHalfOpen:
		cb.trial = false
		if isFailure {
			cb.lastFailure = time.Now()
			cb.transitionLocked(StateOpen)
			return
		}
		cb.failures = 0
		cb.transitionLocked(StateClosed)
	}
}

func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.ResetTimeout {
		cb.trial = false
		cb.transitionLocked(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) transitionLocked(to State) {
	from := cb.state
	cb.state = to
	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

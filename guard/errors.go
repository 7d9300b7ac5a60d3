package guard

import "errors"

// Sentinel errors for guarded probes.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("guard: circuit breaker is open")

	// ErrTimeout is returned when a probe does not finish in time.
	ErrTimeout = errors.New("guard: probe timed out")
)

package health

import "errors"

var (
	// ErrProbePanic indicates a probe panicked instead of returning.
	ErrProbePanic = errors.New("health: probe panicked")

	// ErrNilProbe indicates a nil probe was registered.
	ErrNilProbe = errors.New("health: probe is nil")

	// ErrInvalidStatus indicates an unrecognized status name or value.
	ErrInvalidStatus = errors.New("health: invalid status")

	// ErrRegistryCycle indicates a registry's aggregate check was reached
	// again while that registry was already running.
	ErrRegistryCycle = errors.New("health: registry includes itself")
)

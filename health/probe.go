package health

import "context"

// UnknownName is used for results of probes that expose no name.
const UnknownName = "unknown"

// Probe is the interface for dependency checks.
//
// Contract:
//   - Name is read once, at registration, and used to label the result if
//     Check fails before producing one.
//   - Check reports the dependency's state as a Result. It signals a failure
//     of the check itself by returning a non-nil error (or by panicking); the
//     runner turns either into an unhealthy Result.
//   - Check applies its own connection timeout and releases every connection
//     it opens before returning. The context carries cancellation only.
//   - Check leaves Result.DurationMS unset.
type Probe interface {
	// Name returns the display name of this probe.
	Name() string

	// Check performs the probe and returns the result.
	Check(ctx context.Context) (Result, error)
}

// ProbeFunc is an adapter to allow ordinary functions to be used as Probes.
type ProbeFunc struct {
	name string
	fn   func(context.Context) (Result, error)
}

// NewProbeFunc creates a new ProbeFunc.
func NewProbeFunc(name string, fn func(context.Context) (Result, error)) *ProbeFunc {
	return &ProbeFunc{name: name, fn: fn}
}

// Name returns the name of this probe.
func (f *ProbeFunc) Name() string {
	return f.name
}

// Check performs the probe.
func (f *ProbeFunc) Check(ctx context.Context) (Result, error) {
	return f.fn(ctx)
}

// Middleware decorates a probe. The returned probe should keep the wrapped
// probe's Name.
type Middleware func(Probe) Probe

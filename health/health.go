package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config configures a Health registry.
type Config struct {
	// Parallel runs probes concurrently when true.
	// Default: false
	Parallel bool

	// MaxConcurrency caps the number of probes in flight when Parallel is
	// set. Zero or negative means no cap.
	MaxConcurrency int

	// Middleware wraps every probe at invocation time, outermost first.
	Middleware []Middleware
}

// Health owns an ordered registry of probes and runs them.
//
// Register and Run are safe for concurrent use. Run works on a snapshot of
// the registry taken when it is called.
type Health struct {
	config  Config
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	probe Probe
	name  string // captured at registration
}

// New creates an empty registry.
func New(config ...Config) *Health {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Health{config: cfg}
}

// Register appends a probe to the registry and returns h for chaining.
// Duplicate names are allowed; each registration produces its own result.
func (h *Health) Register(p Probe) *Health {
	e := entry{probe: p, name: UnknownName}
	if p != nil {
		if name := p.Name(); name != "" {
			e.name = name
		}
	}

	h.mu.Lock()
	h.entries = append(h.entries, e)
	h.mu.Unlock()
	return h
}

// RegisterFunc registers fn under name and returns h for chaining.
func (h *Health) RegisterFunc(name string, fn func(context.Context) (Result, error)) *Health {
	return h.Register(NewProbeFunc(name, fn))
}

// Len returns the number of registered probes.
func (h *Health) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Names returns the captured probe names in registration order.
func (h *Health) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.name
	}
	return names
}

// Run invokes every registered probe and returns one result per probe, in
// registration order. Probe errors and panics become unhealthy results; Run
// itself never fails.
func (h *Health) Run(ctx context.Context) []Result {
	h.mu.RLock()
	entries := make([]entry, len(h.entries))
	copy(entries, h.entries)
	h.mu.RUnlock()

	results := make([]Result, len(entries))
	if len(entries) == 0 {
		return results
	}
	ctx = withRunning(ctx, h)

	if !h.config.Parallel || len(entries) == 1 {
		for i, e := range entries {
			results[i] = h.invoke(ctx, e)
		}
		return results
	}

	// Goroutines never return errors, so one failure cannot cancel the rest.
	var g errgroup.Group
	if h.config.MaxConcurrency > 0 {
		g.SetLimit(h.config.MaxConcurrency)
	}
	for i, e := range entries {
		g.Go(func() error {
			results[i] = h.invoke(ctx, e)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (h *Health) invoke(ctx context.Context, e entry) (result Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrProbePanic, r)
			result = Unhealthy(e.name, err.Error(), err).WithDuration(time.Since(start))
		}
	}()

	if e.probe == nil {
		return Unhealthy(e.name, ErrNilProbe.Error(), ErrNilProbe).WithDuration(time.Since(start))
	}

	probe := e.probe
	for i := len(h.config.Middleware) - 1; i >= 0; i-- {
		probe = h.config.Middleware[i](probe)
	}

	res, err := probe.Check(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return Unhealthy(e.name, err.Error(), err).WithDuration(elapsed)
	}
	return res.WithDuration(elapsed)
}

// OverallStatus reduces results to the most severe status present.
// Unhealthy wins over Degraded, which wins over Healthy. An empty slice is
// Healthy.
func OverallStatus(results []Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		if s := severity(r.Status); s > overall {
			overall = s
		}
	}
	return overall
}

// severity maps a status onto the reduction order. Values outside the
// enumeration count as unhealthy.
func severity(s Status) Status {
	switch s {
	case StatusHealthy, StatusDegraded:
		return s
	default:
		return StatusUnhealthy
	}
}

package health

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report is one complete run of a registry.
type Report struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Status is OverallStatus(Results).
	Status Status `json:"status"`

	// Results holds one entry per probe, in registration order.
	Results []Result `json:"results"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the whole run took.
	Duration time.Duration `json:"-"`
}

// Report runs every probe and packages the results with their overall status.
func (h *Health) Report(ctx context.Context) Report {
	start := time.Now()
	results := h.Run(ctx)

	return Report{
		ID:        uuid.NewString(),
		Status:    OverallStatus(results),
		Results:   results,
		StartedAt: start.UTC(),
		Duration:  time.Since(start),
	}
}

// Counts returns the number of results per status.
func (r Report) Counts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}

// Probe returns a Probe that runs the whole registry and reports its overall
// status. This allows one registry to be nested inside another. If the
// registry is reached again while it is already running, directly or through
// another registry, the check fails with ErrRegistryCycle.
func (h *Health) Probe(name string) Probe {
	if name == "" {
		name = "aggregate"
	}
	return &registryProbe{name: name, h: h}
}

type registryProbe struct {
	name string
	h    *Health
}

func (p *registryProbe) Name() string {
	return p.name
}

// runningKey marks the registries on the current call path.
type runningKey struct{}

type running struct {
	h    *Health
	next *running
}

func withRunning(ctx context.Context, h *Health) context.Context {
	outer, _ := ctx.Value(runningKey{}).(*running)
	return context.WithValue(ctx, runningKey{}, &running{h: h, next: outer})
}

func isRunning(ctx context.Context, h *Health) bool {
	for r, _ := ctx.Value(runningKey{}).(*running); r != nil; r = r.next {
		if r.h == h {
			return true
		}
	}
	return false
}

func (p *registryProbe) Check(ctx context.Context) (Result, error) {
	if isRunning(ctx, p.h) {
		return Result{}, ErrRegistryCycle
	}

	results := p.h.Run(ctx)
	status := OverallStatus(results)

	checks := make([]map[string]any, 0, len(results))
	for _, r := range results {
		d := map[string]any{
			"name":   r.Name,
			"status": r.Status.String(),
		}
		if msg, ok := r.MessageText(); ok {
			d["message"] = msg
		}
		if r.DurationMS != nil {
			d["duration_ms"] = *r.DurationMS
		}
		checks = append(checks, d)
	}

	var res Result
	switch status {
	case StatusHealthy:
		res = Healthy(p.name)
	case StatusDegraded:
		res = Degraded(p.name, "some checks degraded")
	default:
		res = Unhealthy(p.name, "some checks failed", nil)
	}
	return res.WithDetails(map[string]any{"checks": checks}), nil
}

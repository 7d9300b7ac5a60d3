// Package memory provides a probe that reports Go heap usage against
// configured thresholds.
package memory

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
)

// Kind is the catalog kind for this probe.
const Kind = "memory"

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the memory probe.
type Config struct {
	// Name is the display name. Default: "memory"
	Name string

	// WarningThreshold is the fraction of MaxAlloc that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.8
	WarningThreshold float64

	// CriticalThreshold is the fraction of MaxAlloc that triggers unhealthy status.
	// Value should be between 0 and 1. Default: 0.95
	CriticalThreshold float64

	// MaxAlloc is the heap budget in bytes.
	// If zero, the memory obtained from the OS (MemStats.Sys) is used.
	MaxAlloc uint64
}

// Probe checks heap usage.
type Probe struct {
	config Config
}

// New creates a memory probe, repairing out-of-range thresholds.
func New(config Config) *Probe {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold > 1 {
			config.CriticalThreshold = 0.99
		}
	}
	config.Name = probe.NameOr(config.Name, Kind)

	return &Probe{config: config}
}

// Factory builds a memory probe from a catalog spec. Options: "warning",
// "critical" (fractions) and "max_alloc" (bytes).
func Factory(spec catalog.Spec) (health.Probe, error) {
	warning, err := spec.FloatOption("warning")
	if err != nil {
		return nil, err
	}
	critical, err := spec.FloatOption("critical")
	if err != nil {
		return nil, err
	}
	maxAlloc, err := spec.UintOption("max_alloc", 64)
	if err != nil {
		return nil, err
	}

	return New(Config{
		Name:              spec.Name,
		WarningThreshold:  warning,
		CriticalThreshold: critical,
		MaxAlloc:          maxAlloc,
	}), nil
}

// Name returns the display name of this probe.
func (p *Probe) Name() string {
	return p.config.Name
}

// Config returns the effective configuration.
func (p *Probe) Config() Config {
	return p.config
}

// Check reads runtime memory statistics and grades heap usage.
func (p *Probe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	budget := p.config.MaxAlloc
	if budget == 0 {
		budget = stats.Sys
	}

	details := map[string]any{
		"alloc_bytes":  stats.Alloc,
		"heap_alloc":   stats.HeapAlloc,
		"heap_in_use":  stats.HeapInuse,
		"heap_objects": stats.HeapObjects,
		"sys":          stats.Sys,
		"num_gc":       stats.NumGC,
		"goroutines":   runtime.NumGoroutine(),
		"max_alloc":    budget,
	}

	if budget == 0 {
		return health.Healthy(p.config.Name).
			WithMessage("memory stats unavailable").
			WithDetails(details), nil
	}

	usage := float64(stats.Alloc) / float64(budget)
	details["usage_percent"] = usage * 100

	switch {
	case usage >= p.config.CriticalThreshold:
		return health.Unhealthy(
			p.config.Name,
			fmt.Sprintf("memory usage critical: %.1f%%", usage*100),
			nil,
		).WithDetails(details), nil
	case usage >= p.config.WarningThreshold:
		return health.Degraded(
			p.config.Name,
			fmt.Sprintf("memory usage high: %.1f%%", usage*100),
		).WithDetails(details), nil
	default:
		return health.Healthy(p.config.Name).WithDetails(details), nil
	}
}

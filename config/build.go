package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/guard"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/secret"
)

// Options controls Build.
type Options struct {
	// Catalog creates probes. Default: catalog.Default.
	Catalog *catalog.Registry

	// Resolver resolves targets and options. Default: a strict resolver over
	// secret.DefaultRegistry configured from Config.Secrets.
	Resolver *secret.Resolver

	// Middleware is installed on the registry, outermost first.
	Middleware []health.Middleware
}

// Build creates a registry with one probe per entry of cfg.Probes, in file
// order. The first probe that cannot be built aborts the build.
func Build(ctx context.Context, cfg *Config, opts Options) (*health.Health, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalid)
	}

	reg := opts.Catalog
	if reg == nil {
		reg = catalog.Default
	}

	resolver := opts.Resolver
	if resolver == nil {
		r, err := secret.DefaultRegistry.NewResolver(true, cfg.Secrets)
		if err != nil {
			return nil, fmt.Errorf("secrets: %w", err)
		}
		defer r.Close()
		resolver = r
	}

	h := health.New(health.Config{
		Parallel:       cfg.Parallel,
		MaxConcurrency: cfg.MaxConcurrency,
		Middleware:     opts.Middleware,
	})

	for i, pc := range cfg.Probes {
		p, err := buildProbe(ctx, reg, resolver, pc)
		if err != nil {
			return nil, fmt.Errorf("probes[%d] (%s): %w", i, pc.label(), err)
		}
		h.Register(p)
	}
	return h, nil
}

func buildProbe(ctx context.Context, reg *catalog.Registry, resolver *secret.Resolver, pc ProbeConfig) (health.Probe, error) {
	target, err := resolver.ResolveValue(ctx, pc.Target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	options, err := resolver.ResolveMap(ctx, pc.Options)
	if err != nil {
		return nil, fmt.Errorf("resolve options: %w", err)
	}

	p, err := reg.Build(catalog.Spec{
		Kind:    pc.Type,
		Name:    pc.Name,
		Target:  target,
		Timeout: pc.Timeout,
		Options: options,
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("factory returned a nil probe")
	}

	return guard.Wrap(p, pc.Guard.options()...), nil
}

func (g *GuardConfig) options() []guard.Option {
	if g == nil {
		return nil
	}

	var opts []guard.Option
	if g.CacheTTL > 0 {
		opts = append(opts, guard.WithCache(g.CacheTTL))
	}
	if g.BreakerFailures > 0 {
		opts = append(opts, guard.WithCircuitBreaker(guard.CircuitBreakerConfig{
			MaxFailures:  g.BreakerFailures,
			ResetTimeout: g.BreakerReset,
		}))
	}
	if g.Retries > 0 {
		opts = append(opts, guard.WithRetry(guard.RetryConfig{
			MaxAttempts:  g.Retries + 1,
			InitialDelay: g.RetryDelay,
			Jitter:       true,
		}))
	}
	if g.Timeout > 0 {
		opts = append(opts, guard.WithTimeout(g.Timeout))
	}
	return opts
}

// label names a probe entry in error messages without echoing its target,
// which may hold credentials.
func (p ProbeConfig) label() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Type != "" {
		return p.Type
	}
	return "untyped"
}

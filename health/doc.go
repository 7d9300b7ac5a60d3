// Package health registers dependency probes, runs them, and reduces their
// results to a single status.
//
// # Core Concepts
//
// A Probe tests one dependency (a cache, a broker, a database) and reports a
// Result. A Health value owns an ordered registry of probes; Run invokes each
// of them, attaches the elapsed time, and converts any probe failure (a
// returned error or a panic) into an unhealthy Result so one broken probe
// never hides the others. OverallStatus reduces a result slice with
// worst-of precedence: Unhealthy, then Degraded, then Healthy.
//
// # Basic Usage
//
//	h := health.New().
//	    RegisterFunc("cache", func(ctx context.Context) (health.Result, error) {
//	        return health.Healthy("cache"), nil
//	    }).
//	    Register(dbProbe)
//
//	results := h.Run(ctx)
//	if health.OverallStatus(results) == health.StatusUnhealthy {
//	    // page someone
//	}
//
// # Parallel Execution
//
// Probes run one at a time by default. Set Config.Parallel to run them
// concurrently; results are still returned in registration order.
//
//	h := health.New(health.Config{Parallel: true, MaxConcurrency: 4})
//
// # Concrete Probes
//
// This package carries no client libraries. Probes for Redis, PostgreSQL,
// SQLite, RabbitMQ, Modbus and memory usage live in the probe/ subpackages and
// are only linked into binaries that import them.
package health

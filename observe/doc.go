// Package observe provides observability for probe runs: a JSON structured
// logger, OpenTelemetry tracing and metrics, and a health.Middleware that
// ties them together.
//
// It is a pure instrumentation library. Consumers install the middleware on
// a registry:
//
//	obs, err := observe.NewObserver(ctx, cfg)
//	mw, err := observe.MiddlewareFromObserver(obs)
//	h := health.New(health.Config{Middleware: []health.Middleware{mw.Wrap}})
package observe

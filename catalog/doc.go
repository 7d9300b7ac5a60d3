// Package catalog maps probe kinds ("redis", "postgres", ...) to factories
// that build health.Probe values from a declarative Spec.
//
// Probe packages register themselves from init, the way database/sql drivers
// do, so a binary only links the client libraries of the probes it imports:
//
//	import (
//	    "github.com/jonwraymond/healthcheckx/catalog"
//	    _ "github.com/jonwraymond/healthcheckx/probe/redis"
//	)
//
//	p, err := catalog.Build(catalog.Spec{
//	    Kind:   "redis",
//	    Target: "redis://localhost:6379/0",
//	})
package catalog

// Package config loads a YAML description of probes and builds a
// health.Health from it.
//
// A minimal file:
//
//	parallel: true
//	probes:
//	  - type: postgres
//	    target: secretref:env:PG_DSN
//	    guard:
//	      timeout: 3s
//	      retries: 1
//	  - type: redis
//	    target: redis://${REDIS_HOST}:6379/0
//	    options:
//	      slow: 250ms
//
// Load and Parse only decode. Validate checks the file without changing it,
// ApplyDefaults fills in unset values, and Build resolves secrets, creates
// probes from a catalog and wraps them with guards.
package config

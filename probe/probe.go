// Package probe holds what the concrete dependency probes under probe/ share:
// default timeouts and the mapping from a connectivity attempt to a Result.
//
// An unreachable or failing dependency is reported as data: an unhealthy
// Result with a nil error. Returned errors are left for failures of the check
// itself, such as a panic or an error raised by a guard.
//
// Each subpackage wraps one client library and registers a factory with the
// catalog from init. Import the subpackage to make its kind available:
//
//	import _ "github.com/jonwraymond/healthcheckx/probe/postgres"
package probe

import (
	"fmt"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

// Default connection timeouts.
const (
	DefaultTimeout    = 2 * time.Second
	DefaultSQLTimeout = 3 * time.Second
)

// SlowOption is the catalog option naming the latency above which a
// reachable dependency is reported as degraded.
const SlowOption = "slow"

// Outcome maps one connectivity attempt onto a Result.
//
// A non-nil err is unhealthy with err's text. A successful attempt that took
// longer than slow (when slow > 0) is degraded. Anything else is healthy.
func Outcome(name string, elapsed, slow time.Duration, err error) health.Result {
	if err != nil {
		return health.Unhealthy(name, err.Error(), err)
	}
	if slow > 0 && elapsed > slow {
		return health.Degraded(name, fmt.Sprintf("slow: %s exceeds %s", elapsed.Round(time.Millisecond), slow))
	}
	return health.Healthy(name)
}

// TimeoutOr returns d if positive, otherwise def.
func TimeoutOr(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

// NameOr returns name if non-empty, otherwise def.
func NameOr(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

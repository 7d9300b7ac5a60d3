// Package sqlite provides a SQLite connectivity probe backed by the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
	"github.com/jonwraymond/healthcheckx/probe/sqlcheck"
)

// Kind is the catalog kind for this probe.
const Kind = "sqlite"

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the SQLite probe.
type Config struct {
	// Name is the display name. Default: "sqlite"
	Name string

	// Path is the database file path or ":memory:".
	Path string

	// Timeout bounds the check. Default: 3s
	Timeout time.Duration

	// Slow reports degraded when exceeded. Zero disables it.
	Slow time.Duration
}

// New creates a SQLite probe.
func New(config Config) *sqlcheck.Probe {
	return sqlcheck.New(sqlcheck.Config{
		Name:    probe.NameOr(config.Name, Kind),
		Driver:  "sqlite",
		DSN:     config.Path,
		Timeout: config.Timeout,
		Slow:    config.Slow,
	})
}

// Factory builds a SQLite probe from a catalog spec. Target is the path.
func Factory(spec catalog.Spec) (health.Probe, error) {
	slow, err := spec.DurationOption(probe.SlowOption)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:    spec.Name,
		Path:    spec.Target,
		Timeout: spec.Timeout,
		Slow:    slow,
	}), nil
}

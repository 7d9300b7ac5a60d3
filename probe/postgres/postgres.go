// Package postgres provides a PostgreSQL connectivity probe using the pgx
// database/sql driver.
package postgres

import (
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
	"github.com/jonwraymond/healthcheckx/probe/sqlcheck"
)

// Kind is the catalog kind for this probe.
const Kind = "postgres"

// DefaultName is the display name used when none is configured.
const DefaultName = "postgresql"

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the PostgreSQL probe.
type Config struct {
	// Name is the display name. Default: "postgresql"
	Name string

	// DSN is a libpq-style connection string or postgres:// URL.
	DSN string

	// Timeout bounds the check. Default: 3s
	Timeout time.Duration

	// Slow reports degraded when exceeded. Zero disables it.
	Slow time.Duration
}

// New creates a PostgreSQL probe.
func New(config Config) *sqlcheck.Probe {
	return sqlcheck.New(sqlcheck.Config{
		Name:    probe.NameOr(config.Name, DefaultName),
		Driver:  "pgx",
		DSN:     config.DSN,
		Timeout: config.Timeout,
		Slow:    config.Slow,
	})
}

// Factory builds a PostgreSQL probe from a catalog spec. Target is the DSN.
func Factory(spec catalog.Spec) (health.Probe, error) {
	slow, err := spec.DurationOption(probe.SlowOption)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:    spec.Name,
		DSN:     spec.Target,
		Timeout: spec.Timeout,
		Slow:    slow,
	}), nil
}

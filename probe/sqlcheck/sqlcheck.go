// Package sqlcheck runs the connectivity check shared by database/sql based
// probes: open, ping, SELECT 1, close.
package sqlcheck

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
)

// Config describes one database to probe.
type Config struct {
	// Name is the display name reported in results.
	Name string

	// Driver is the database/sql driver name ("pgx", "sqlite").
	Driver string

	// DSN is the data source name passed to sql.Open.
	DSN string

	// Timeout bounds the whole check.
	Timeout time.Duration

	// Slow marks a successful check as degraded when exceeded. Zero disables it.
	Slow time.Duration

	// Query is the statement used to verify the connection. Default: "SELECT 1"
	Query string
}

// Probe checks a database through database/sql.
type Probe struct {
	config Config
}

// New creates a database probe.
func New(config Config) *Probe {
	if config.Query == "" {
		config.Query = "SELECT 1"
	}
	config.Timeout = probe.TimeoutOr(config.Timeout, probe.DefaultSQLTimeout)
	return &Probe{config: config}
}

// Name returns the display name of this probe.
func (p *Probe) Name() string {
	return p.config.Name
}

// Config returns the effective configuration.
func (p *Probe) Config() Config {
	return p.config
}

// Check opens a dedicated connection pool, verifies it, and closes it.
func (p *Probe) Check(ctx context.Context) (health.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	start := time.Now()
	err := p.roundTrip(ctx)
	return probe.Outcome(p.config.Name, time.Since(start), p.config.Slow, err), nil
}

func (p *Probe) roundTrip(ctx context.Context) error {
	db, err := sql.Open(p.config.Driver, p.config.DSN)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	var one any
	if err := db.QueryRowContext(ctx, p.config.Query).Scan(&one); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

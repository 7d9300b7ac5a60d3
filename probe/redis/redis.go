// Package redis provides a Redis connectivity probe built on go-redis.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
)

// Kind is the catalog kind for this probe.
const Kind = "redis"

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the Redis probe.
type Config struct {
	// Name is the display name. Default: "redis"
	Name string

	// URL is a redis:// or rediss:// URL, or a bare host:port.
	URL string

	// Timeout applies to dial, read and write. Default: 2s
	Timeout time.Duration

	// Slow reports degraded when exceeded. Zero disables it.
	Slow time.Duration
}

// Probe pings a Redis server.
type Probe struct {
	config Config
}

// New creates a Redis probe.
func New(config Config) *Probe {
	config.Name = probe.NameOr(config.Name, Kind)
	config.Timeout = probe.TimeoutOr(config.Timeout, probe.DefaultTimeout)
	return &Probe{config: config}
}

// Factory builds a Redis probe from a catalog spec. Target is the URL.
func Factory(spec catalog.Spec) (health.Probe, error) {
	slow, err := spec.DurationOption(probe.SlowOption)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:    spec.Name,
		URL:     spec.Target,
		Timeout: spec.Timeout,
		Slow:    slow,
	}), nil
}

// Name returns the display name of this probe.
func (p *Probe) Name() string {
	return p.config.Name
}

// Check connects, sends PING, and closes the connection.
func (p *Probe) Check(ctx context.Context) (health.Result, error) {
	start := time.Now()
	err := p.ping(ctx)
	return probe.Outcome(p.config.Name, time.Since(start), p.config.Slow, err), nil
}

func (p *Probe) ping(ctx context.Context) error {
	opts, err := p.options()
	if err != nil {
		return err
	}

	client := goredis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	return client.Ping(ctx).Err()
}

func (p *Probe) options() (*goredis.Options, error) {
	var opts *goredis.Options
	if strings.Contains(p.config.URL, "://") {
		parsed, err := goredis.ParseURL(p.config.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{Addr: p.config.URL}
	}

	opts.DialTimeout = p.config.Timeout
	opts.ReadTimeout = p.config.Timeout
	opts.WriteTimeout = p.config.Timeout
	opts.PoolSize = 1
	opts.MaxRetries = -1
	return opts, nil
}

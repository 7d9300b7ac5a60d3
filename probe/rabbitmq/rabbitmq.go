// Package rabbitmq provides an AMQP 0-9-1 broker connectivity probe.
package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
)

// Kind is the catalog kind for this probe.
const Kind = "rabbitmq"

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the RabbitMQ probe.
type Config struct {
	// Name is the display name. Default: "rabbitmq"
	Name string

	// URL is an amqp:// or amqps:// URL.
	URL string

	// Timeout bounds the TCP dial. Default: 2s
	Timeout time.Duration

	// Slow reports degraded when exceeded. Zero disables it.
	Slow time.Duration
}

// Probe opens and closes a broker connection.
type Probe struct {
	config Config
}

// New creates a RabbitMQ probe.
func New(config Config) *Probe {
	config.Name = probe.NameOr(config.Name, Kind)
	config.Timeout = probe.TimeoutOr(config.Timeout, probe.DefaultTimeout)
	return &Probe{config: config}
}

// Factory builds a RabbitMQ probe from a catalog spec. Target is the URL.
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

// Check performs the AMQP handshake and closes the connection.
func (p *Probe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	start := time.Now()
	err := p.dial(ctx)
	return probe.Outcome(p.config.Name, time.Since(start), p.config.Slow, err), nil
}

func (p *Probe) dial(ctx context.Context) error {
	timeout := p.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	conn, err := amqp.DialConfig(p.config.URL, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Properties: amqp.Table{
			"connection_name": "healthcheckx",
		},
	})
	if err != nil {
		return err
	}
	return conn.Close()
}

// Package modbus provides a Modbus TCP device connectivity probe.
package modbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/probe"
)

// Kind is the catalog kind for this probe.
const Kind = "modbus"

// ErrEndpointRequired indicates the probe has no device address.
var ErrEndpointRequired = errors.New("modbus probe: endpoint required")

func init() {
	catalog.Register(Kind, Factory)
}

// Config configures the Modbus probe.
type Config struct {
	// Name is the display name. Default: "modbus"
	Name string

	// Endpoint is the device host:port.
	Endpoint string

	// UnitID is the Modbus slave id used for the optional register read.
	UnitID uint8

	// Register, when set, is read as one holding register after connecting.
	// Nil checks TCP connectivity only.
	Register *uint16

	// Timeout bounds connect and read. Default: 2s
	Timeout time.Duration

	// Slow reports degraded when exceeded. Zero disables it.
	Slow time.Duration
}

// Probe connects to a Modbus TCP device.
type Probe struct {
	config Config
}

// New creates a Modbus probe.
func New(config Config) *Probe {
	config.Name = probe.NameOr(config.Name, Kind)
	config.Timeout = probe.TimeoutOr(config.Timeout, probe.DefaultTimeout)
	return &Probe{config: config}
}

// Factory builds a Modbus probe from a catalog spec. Target is host:port;
// options "unit_id" and "register" enable a holding register read.
func Factory(spec catalog.Spec) (health.Probe, error) {
	if spec.Target == "" {
		return nil, ErrEndpointRequired
	}
	slow, err := spec.DurationOption(probe.SlowOption)
	if err != nil {
		return nil, err
	}
	unitID, err := spec.UintOption("unit_id", 8)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		Name:     spec.Name,
		Endpoint: spec.Target,
		UnitID:   uint8(unitID),
		Timeout:  spec.Timeout,
		Slow:     slow,
	}
	if v, ok := spec.Option("register"); ok && v != "" {
		reg, err := spec.UintOption("register", 16)
		if err != nil {
			return nil, err
		}
		r := uint16(reg)
		cfg.Register = &r
	}
	return New(cfg), nil
}

// Name returns the display name of this probe.
func (p *Probe) Name() string {
	return p.config.Name
}

// Check connects to the device, optionally reads a register, and disconnects.
func (p *Probe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	start := time.Now()
	err := p.poll()
	return probe.Outcome(p.config.Name, time.Since(start), p.config.Slow, err), nil
}

func (p *Probe) poll() error {
	if p.config.Endpoint == "" {
		return ErrEndpointRequired
	}

	h := modbus.NewTCPClientHandler(p.config.Endpoint)
	h.Timeout = p.config.Timeout
	h.SlaveId = p.config.UnitID

	if err := h.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer h.Close()

	if p.config.Register == nil {
		return nil
	}
	if _, err := modbus.NewClient(h).ReadHoldingRegisters(*p.config.Register, 1); err != nil {
		return fmt.Errorf("read register %d: %w", *p.config.Register, err)
	}
	return nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/healthcheckx/observe"
)

// DefaultServiceName is used for telemetry when service_name is unset.
const DefaultServiceName = "healthcheckx"

// Config is the root of a configuration file.
type Config struct {
	ServiceName    string `yaml:"service_name"`
	Parallel       bool   `yaml:"parallel"`
	MaxConcurrency int    `yaml:"max_concurrency"`

	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`

	// Secrets holds per-provider settings, e.g. secrets.file.root.
	Secrets map[string]map[string]string `yaml:"secrets"`

	Probes []ProbeConfig `yaml:"probes"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Exporter  string  `yaml:"exporter"`
	SamplePct float64 `yaml:"sample_pct"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// ProbeConfig describes one probe.
type ProbeConfig struct {
	// Type selects the catalog factory, e.g. "redis".
	Type string `yaml:"type"`

	// Name overrides the result name. Empty means the factory default.
	Name string `yaml:"name"`

	// Target is the address, URL, DSN or path. Environment variables and
	// secret references are resolved at build time.
	Target string `yaml:"target"`

	// Timeout bounds connection setup inside the probe.
	Timeout time.Duration `yaml:"timeout"`

	// Options holds type-specific settings. Values are resolved like Target.
	Options map[string]string `yaml:"options"`

	Guard *GuardConfig `yaml:"guard"`
}

// GuardConfig selects the guards wrapped around a probe. Zero values leave a
// guard off.
type GuardConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	Retries         int           `yaml:"retries"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerReset    time.Duration `yaml:"breaker_reset"`
}

// Load reads and decodes the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML. Unknown keys are rejected; an empty document yields an
// empty Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset values. It must be called after Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = "none"
	}
	if cfg.Metrics.Exporter == "" {
		cfg.Metrics.Exporter = "none"
	}
	if cfg.Tracing.Enabled && cfg.Tracing.SamplePct == 0 {
		cfg.Tracing.SamplePct = 1.0
	}
}

// Observability converts the telemetry sections to an observe.Config.
func (c *Config) Observability(version string) observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Tracing.Enabled,
			Exporter:  c.Tracing.Exporter,
			SamplePct: c.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Metrics.Enabled,
			Exporter: c.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.Logging.Enabled,
			Level:   c.Logging.Level,
		},
	}
}

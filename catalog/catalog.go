package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/healthcheckx/health"
)

var (
	// ErrUnknownKind indicates no factory is registered for a kind.
	ErrUnknownKind = errors.New("catalog: unknown probe kind")

	// ErrDuplicateKind indicates a kind was registered twice.
	ErrDuplicateKind = errors.New("catalog: probe kind already registered")

	// ErrInvalidRegistration indicates an empty kind or nil factory.
	ErrInvalidRegistration = errors.New("catalog: invalid registration")

	// ErrInvalidOption indicates a Spec option could not be parsed.
	ErrInvalidOption = errors.New("catalog: invalid option")
)

// Spec describes one probe to build. Its fields are interpreted by the
// factory for Kind; the runner never sees them.
type Spec struct {
	// Kind selects the factory.
	Kind string

	// Name overrides the probe's display name.
	Name string

	// Target is the address, URL or DSN of the dependency.
	Target string

	// Timeout bounds connection setup. Zero means the factory default.
	Timeout time.Duration

	// Options holds kind-specific settings.
	Options map[string]string
}

// Option returns a kind-specific option.
func (s Spec) Option(key string) (string, bool) {
	v, ok := s.Options[key]
	return v, ok
}

// DurationOption parses an option as a duration. Missing options yield zero.
func (s Spec) DurationOption(key string) (time.Duration, error) {
	v, ok := s.Options[key]
	if !ok || v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidOption, key, v, err)
	}
	return d, nil
}

// FloatOption parses an option as a float. Missing options yield zero.
func (s Spec) FloatOption(key string) (float64, error) {
	v, ok := s.Options[key]
	if !ok || v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidOption, key, v, err)
	}
	return f, nil
}

// UintOption parses an option as an unsigned integer of the given bit size.
// Missing options yield zero.
func (s Spec) UintOption(key string, bitSize int) (uint64, error) {
	v, ok := s.Options[key]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidOption, key, v, err)
	}
	return n, nil
}

// Factory builds a probe from a spec.
type Factory func(spec Spec) (health.Probe, error)

// Registry manages probe factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for kind.
func (r *Registry) Register(kind string, factory Factory) error {
	kind = strings.TrimSpace(kind)
	if kind == "" || factory == nil {
		return ErrInvalidRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.factories[kind] = factory
	return nil
}

// MustRegister is like Register but panics on error. It is meant for init.
func (r *Registry) MustRegister(kind string, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Build creates a probe for spec.Kind.
func (r *Registry) Build(spec Spec) (health.Probe, error) {
	kind := strings.TrimSpace(spec.Kind)

	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	p, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("build %s probe: %w", kind, err)
	}
	return p, nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Default is the registry probe packages register into.
var Default = NewRegistry()

// Register adds a factory to Default and panics on conflict.
func Register(kind string, factory Factory) {
	Default.MustRegister(kind, factory)
}

// Build creates a probe from Default.
func Build(spec Spec) (health.Probe, error) {
	return Default.Build(spec)
}

// Kinds lists the kinds registered in Default.
func Kinds() []string {
	return Default.Kinds()
}

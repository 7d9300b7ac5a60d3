package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
)

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})

	if p.Config().WarningThreshold != 0.8 {
		t.Errorf("WarningThreshold = %v, want 0.8", p.Config().WarningThreshold)
	}
	if p.Config().CriticalThreshold != 0.95 {
		t.Errorf("CriticalThreshold = %v, want 0.95", p.Config().CriticalThreshold)
	}
	if p.Name() != "memory" {
		t.Errorf("Name() = %v, want 'memory'", p.Name())
	}
}

func TestNew_InvalidThresholds(t *testing.T) {
	p := New(Config{WarningThreshold: 1.5})
	if p.Config().WarningThreshold != 0.8 {
		t.Errorf("Invalid warning should default to 0.8, got %v", p.Config().WarningThreshold)
	}

	p = New(Config{WarningThreshold: 0.9, CriticalThreshold: 0.7})
	if p.Config().CriticalThreshold <= p.Config().WarningThreshold {
		t.Error("Critical threshold should be adjusted to be > warning threshold")
	}
}

func TestProbe_Check(t *testing.T) {
	p := New(Config{Name: "heap"})

	result, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Name != "heap" {
		t.Errorf("Name = %v, want 'heap'", result.Name)
	}
	if result.DurationMS != nil {
		t.Error("probe must leave DurationMS unset")
	}

	for _, key := range []string{"alloc_bytes", "heap_alloc", "num_gc", "goroutines"} {
		if _, ok := result.Details[key]; !ok {
			t.Errorf("Details missing key: %s", key)
		}
	}
}

func TestProbe_CheckTinyBudget(t *testing.T) {
	p := New(Config{MaxAlloc: 1024, WarningThreshold: 0.5, CriticalThreshold: 0.8})

	result, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != health.StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy with a 1KB budget", result.Status)
	}
	if result.Details["max_alloc"] != uint64(1024) {
		t.Errorf("max_alloc = %v, want 1024", result.Details["max_alloc"])
	}
}

func TestProbe_CheckContextCancelled(t *testing.T) {
	p := New(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Check(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Check() error = %v, want context.Canceled", err)
	}
}

func TestFactory(t *testing.T) {
	p, err := catalog.Build(catalog.Spec{
		Kind:    Kind,
		Name:    "mem",
		Options: map[string]string{"warning": "0.6", "critical": "0.9", "max_alloc": "4096"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	mp, ok := p.(*Probe)
	if !ok {
		t.Fatalf("Build() returned %T, want *Probe", p)
	}
	cfg := mp.Config()
	if cfg.Name != "mem" || cfg.WarningThreshold != 0.6 || cfg.CriticalThreshold != 0.9 || cfg.MaxAlloc != 4096 {
		t.Errorf("Config() = %+v", cfg)
	}

	if _, err := Factory(catalog.Spec{Options: map[string]string{"warning": "lots"}}); !errors.Is(err, catalog.ErrInvalidOption) {
		t.Errorf("Factory() error = %v, want ErrInvalidOption", err)
	}
}

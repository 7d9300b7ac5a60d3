package modbus

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/healthcheckx/catalog"
	"github.com/jonwraymond/healthcheckx/health"
)

func TestProbe_CheckListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	p := New(Config{Endpoint: ln.Addr().String(), Timeout: time.Second})

	result, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != health.StatusHealthy {
		msg, _ := result.MessageText()
		t.Errorf("Status = %v (%s), want StatusHealthy", result.Status, msg)
	}
}

func TestProbe_CheckUnreachable(t *testing.T) {
	p := New(Config{Endpoint: "127.0.0.1:1", Timeout: time.Second})

	result, err := p.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != health.StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", result.Status)
	}
	if msg, _ := result.MessageText(); !strings.Contains(msg, "connect") {
		t.Errorf("Message = %q, want connect error", msg)
	}
}

func TestProbe_CheckNoEndpoint(t *testing.T) {
	result, _ := New(Config{}).Check(context.Background())
	if !errors.Is(result.Error, ErrEndpointRequired) {
		t.Errorf("Error = %v, want ErrEndpointRequired", result.Error)
	}
}

func TestFactory(t *testing.T) {
	p, err := catalog.Build(catalog.Spec{
		Kind:    Kind,
		Name:    "plc-1",
		Target:  "10.0.0.5:502",
		Options: map[string]string{"unit_id": "3", "register": "40"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	mp := p.(*Probe)
	if mp.config.UnitID != 3 || mp.config.Register == nil || *mp.config.Register != 40 {
		t.Errorf("config = %+v, want unit 3 register 40", mp.config)
	}

	if _, err := Factory(catalog.Spec{}); !errors.Is(err, ErrEndpointRequired) {
		t.Errorf("Factory() error = %v, want ErrEndpointRequired", err)
	}
	if _, err := Factory(catalog.Spec{Target: "x:502", Options: map[string]string{"unit_id": "300"}}); !errors.Is(err, catalog.ErrInvalidOption) {
		t.Errorf("Factory() error = %v, want ErrInvalidOption", err)
	}
}

func TestFactory_EmptyRegister(t *testing.T) {
	p, err := Factory(catalog.Spec{
		Target:  "10.0.0.5:502",
		Options: map[string]string{"register": ""},
	})
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	if reg := p.(*Probe).config.Register; reg != nil {
		t.Errorf("Register = %d, want nil (connect only)", *reg)
	}
}

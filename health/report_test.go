package health

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestHealth_Report(t *testing.T) {
	h := New().
		Register(healthyProbe("cache")).
		RegisterFunc("db", func(ctx context.Context) (Result, error) {
			return Degraded("db", "slow"), nil
		})

	report := h.Report(context.Background())

	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("ID = %q, want a UUID: %v", report.ID, err)
	}
	if report.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", report.Status)
	}
	if len(report.Results) != 2 {
		t.Fatalf("Results = %d, want 2", len(report.Results))
	}
	if report.StartedAt.IsZero() {
		t.Error("StartedAt should not be zero")
	}
	if report.Duration < 0 {
		t.Errorf("Duration = %v, want >= 0", report.Duration)
	}

	counts := report.Counts()
	if counts[StatusHealthy] != 1 || counts[StatusDegraded] != 1 || counts[StatusUnhealthy] != 0 {
		t.Errorf("Counts() = %v, want 1 healthy and 1 degraded", counts)
	}
}

func TestHealth_ReportUniqueIDs(t *testing.T) {
	h := New()
	if a, b := h.Report(context.Background()).ID, h.Report(context.Background()).ID; a == b {
		t.Errorf("two reports share ID %q", a)
	}
}

func TestReport_JSON(t *testing.T) {
	h := New().Register(failingProbe("broker", errors.New("refused")))

	data, err := json.Marshal(h.Report(context.Background()))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Status  string `json:"status"`
		Results []struct {
			Name       string   `json:"name"`
			Status     string   `json:"status"`
			Message    *string  `json:"message"`
			DurationMS *float64 `json:"duration_ms"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Status != "unhealthy" {
		t.Errorf("status = %q, want 'unhealthy'", decoded.Status)
	}
	if len(decoded.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(decoded.Results))
	}
	r := decoded.Results[0]
	if r.Name != "broker" || r.Status != "unhealthy" {
		t.Errorf("result = %+v, want broker/unhealthy", r)
	}
	if r.Message == nil || *r.Message != "refused" {
		t.Errorf("message = %v, want 'refused'", r.Message)
	}
	if r.DurationMS == nil {
		t.Error("duration_ms missing from JSON")
	}
}

func TestHealth_Probe(t *testing.T) {
	inner := New().
		Register(healthyProbe("cache")).
		Register(healthyProbe("db"))

	probe := inner.Probe("")
	if probe.Name() != "aggregate" {
		t.Errorf("Name() = %v, want 'aggregate'", probe.Name())
	}

	result, err := probe.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", result.Status)
	}
	checks, ok := result.Details["checks"].([]map[string]any)
	if !ok || len(checks) != 2 {
		t.Fatalf("Details[checks] = %v, want 2 entries", result.Details["checks"])
	}
	if checks[1]["name"] != "db" {
		t.Errorf("checks[1][name] = %v, want 'db'", checks[1]["name"])
	}
}

func TestHealth_ProbeNested(t *testing.T) {
	inner := New().Register(failingProbe("queue", errors.New("refused")))
	outer := New().
		Register(healthyProbe("cache")).
		Register(inner.Probe("workers"))

	results := outer.Run(context.Background())

	if results[1].Name != "workers" || results[1].Status != StatusUnhealthy {
		t.Errorf("nested result = {%s %v}, want {workers unhealthy}", results[1].Name, results[1].Status)
	}
	if msg, _ := results[1].MessageText(); msg != "some checks failed" {
		t.Errorf("nested message = %q, want 'some checks failed'", msg)
	}
	if OverallStatus(results) != StatusUnhealthy {
		t.Errorf("OverallStatus() = %v, want StatusUnhealthy", OverallStatus(results))
	}
}

func TestHealth_SelfRegisteredAggregate(t *testing.T) {
	h := New().Register(healthyProbe("cache"))
	h.Register(h.Probe("self"))

	results := h.Run(context.Background())

	if results[0].Status != StatusHealthy {
		t.Errorf("results[0].Status = %v, want StatusHealthy", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("results[1].Status = %v, want StatusUnhealthy", results[1].Status)
	}
	if !errors.Is(results[1].Error, ErrRegistryCycle) {
		t.Errorf("results[1].Error = %v, want ErrRegistryCycle", results[1].Error)
	}
}

func TestHealth_AggregateCycle(t *testing.T) {
	a := New()
	b := New().Register(a.Probe("a"))
	a.Register(b.Probe("b"))

	results := a.Run(context.Background())

	if len(results) != 1 || results[0].Status != StatusUnhealthy {
		t.Fatalf("results = %v, want one unhealthy entry", results)
	}
	checks, _ := results[0].Details["checks"].([]map[string]any)
	if len(checks) != 1 || checks[0]["message"] != ErrRegistryCycle.Error() {
		t.Errorf("Details[checks] = %v, want the cycle reported for a", results[0].Details["checks"])
	}

	// The same registry may still appear twice on sibling paths.
	shared := New().Register(healthyProbe("db"))
	outer := New().
		Register(shared.Probe("first")).
		Register(shared.Probe("second"))
	for _, r := range outer.Run(context.Background()) {
		if r.Status != StatusHealthy {
			t.Errorf("%s status = %v, want StatusHealthy", r.Name, r.Status)
		}
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonwraymond/healthcheckx/health"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "healthcheckx.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(Options{Stdout: &out, Stderr: &errOut})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), ExitCode(err)
}

func sqliteConfig(t *testing.T, extra string) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "app.db")
	return writeConfig(t, `
probes:
  - type: sqlite
    target: `+db+`
`+extra)
}

func TestRun_HealthyText(t *testing.T) {
	path := sqliteConfig(t, "")

	out, _, code := execute(t, "run", "--config", path)
	if code != ExitHealthy {
		t.Fatalf("exit code = %d, want %d\n%s", code, ExitHealthy, out)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "sqlite") {
		t.Errorf("output missing table:\n%s", out)
	}
	if !strings.Contains(out, "overall: healthy (1 healthy, 0 degraded, 0 unhealthy)") {
		t.Errorf("output missing summary:\n%s", out)
	}
}

func TestRun_JSON(t *testing.T) {
	path := sqliteConfig(t, `
  - type: memory
    name: heap
    options:
      max_alloc: "1"
`)

	out, _, code := execute(t, "run", "-c", path, "--format", "json")
	if code != ExitUnhealthy {
		t.Fatalf("exit code = %d, want %d", code, ExitUnhealthy)
	}

	var report struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Results []struct {
			Name       string   `json:"name"`
			Status     string   `json:"status"`
			DurationMS *float64 `json:"duration_ms"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Status != "unhealthy" || report.ID == "" {
		t.Errorf("report = %+v", report)
	}
	if len(report.Results) != 2 || report.Results[0].Name != "sqlite" || report.Results[1].Name != "heap" {
		t.Fatalf("results = %+v", report.Results)
	}
	if report.Results[1].Status != "unhealthy" {
		t.Errorf("heap status = %q, want unhealthy", report.Results[1].Status)
	}
	for _, r := range report.Results {
		if r.DurationMS == nil {
			t.Errorf("%s: duration_ms missing", r.Name)
		}
	}
}

func TestRun_Degraded(t *testing.T) {
	path := sqliteConfig(t, `    options:
      slow: 1ns
`)

	out, _, code := execute(t, "run", "--config", path)
	if code != ExitHealthy {
		t.Errorf("exit code = %d, want %d for degraded", code, ExitHealthy)
	}
	if !strings.Contains(out, "degraded") {
		t.Errorf("output = %s", out)
	}

	_, _, code = execute(t, "run", "--config", path, "--fail-on-degraded")
	if code != ExitUnhealthy {
		t.Errorf("exit code = %d, want %d with --fail-on-degraded", code, ExitUnhealthy)
	}
}

func TestRun_Parallel(t *testing.T) {
	path := sqliteConfig(t, `
  - type: memory
    options:
      max_alloc: "1000000000000000"
`)

	out, _, code := execute(t, "run", "--config", path, "--parallel", "--format", "json")
	if code != ExitHealthy {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	if strings.Index(out, `"sqlite"`) > strings.Index(out, `"memory"`) {
		t.Errorf("parallel run changed result order:\n%s", out)
	}
}

func TestRun_LogLevel(t *testing.T) {
	path := sqliteConfig(t, "")

	_, stderr, code := execute(t, "run", "--config", path, "--log-level", "debug")
	if code != ExitHealthy {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, `"msg":"run complete"`) || !strings.Contains(stderr, `"probe.name":"sqlite"`) {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	good := sqliteConfig(t, "")
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"run", "--config", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad yaml", []string{"run", "--config", writeConfig(t, "probes: [")}},
		{"invalid config", []string{"run", "--config", writeConfig(t, "probes:\n  - name: x\n")}},
		{"unknown type", []string{"run", "--config", writeConfig(t, "probes:\n  - type: ftp\n")}},
		{"bad format", []string{"run", "--config", good, "--format", "xml"}},
		{"bad log level", []string{"run", "--config", good, "--log-level", "loud"}},
		{"unknown flag", []string{"run", "--verbose"}},
		{"unknown command", []string{"serve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, code := execute(t, tt.args...); code != ExitUsage {
				t.Errorf("exit code = %d, want %d", code, ExitUsage)
			}
		})
	}
}

func TestProbesCommand(t *testing.T) {
	out, _, code := execute(t, "probes")
	if code != ExitHealthy {
		t.Fatalf("exit code = %d", code)
	}
	want := "memory\nmodbus\npostgres\nrabbitmq\nredis\nsqlite\n"
	if out != want {
		t.Errorf("probes output = %q, want %q", out, want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, code := execute(t, "version")
	if code != ExitHealthy {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out, "healthcheckx version dev\n") || !strings.Contains(out, "Go version:") {
		t.Errorf("version output = %q", out)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitHealthy},
		{&ExitError{Code: ExitUnhealthy}, ExitUnhealthy},
		{usageError(errors.New("bad")), ExitUsage},
		{errors.New("cobra said no"), ExitUsage},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}

	if !IsSilent(&ExitError{Code: 1, Silent: true}) || IsSilent(errors.New("x")) {
		t.Error("IsSilent mismatch")
	}
}

func TestRender_AbsentDuration(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "text", health.Report{
		ID:      "r1",
		Status:  health.StatusDegraded,
		Results: []health.Result{health.Degraded("cache", "slow")},
	})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "cache") || !strings.Contains(buf.String(), "-") {
		t.Errorf("render() = %s", buf.String())
	}
}

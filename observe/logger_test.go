package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter("info", &buf).Info(context.Background(), "probe healthy", Field{Key: "duration_ms", Value: 1.5})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["level"] != "info" || e["msg"] != "probe healthy" || e["duration_ms"] != 1.5 {
		t.Errorf("entry = %v", e)
	}
	if _, ok := e["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["msg"] != "warn" || entries[1]["msg"] != "error" {
		t.Errorf("entries = %v", entries)
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter("debug", &buf).Info(context.Background(), "connect",
		Field{Key: "dsn", Value: "postgres://u:hunter2@db/app"},
		Field{Key: "url", Value: "redis://:hunter2@cache:6379"},
		Field{Key: "password", Value: "hunter2"},
		Field{Key: "target", Value: "db:5432"},
	)

	e := decodeLines(t, &buf)[0]
	for _, key := range []string{"dsn", "url", "password"} {
		if e[key] != "[REDACTED]" {
			t.Errorf("%s = %v, want [REDACTED]", key, e[key])
		}
	}
	if e["target"] != "db:5432" {
		t.Errorf("target = %v, want db:5432", e["target"])
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Error("secret leaked into log output")
	}
}

func TestLogger_WithProbe(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter("info", &buf)
	base.WithProbe("redis").Info(context.Background(), "scoped")
	base.Info(context.Background(), "unscoped")

	entries := decodeLines(t, &buf)
	if entries[0]["probe.name"] != "redis" {
		t.Errorf("scoped entry probe.name = %v, want redis", entries[0]["probe.name"])
	}
	if _, ok := entries[1]["probe.name"]; ok {
		t.Error("WithProbe must not mutate the parent logger")
	}
}

func TestLogger_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			base.WithProbe("p").Info(context.Background(), "line")
		}()
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("got %d entries, want 20", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Info(context.Background(), "x", Field{Key: "k", Value: 1})
	if l.WithProbe("p") == nil {
		t.Error("WithProbe() returned nil")
	}
}

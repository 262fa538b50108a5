package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"TRACE", slog.LevelDebug, true},
		{" info ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range tests {
		got, ok := ParseLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewJSON(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: "json"})
	logger.Debug("hidden")
	logger.Info("frame dropped", "opcode", "Unknown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "frame dropped" || rec["opcode"] != "Unknown" {
		t.Errorf("record = %v", rec)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "text")

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "error", Format: "json"})
	logger.Debug("visible", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "msg=visible") || !strings.Contains(out, "k=v") {
		t.Errorf("output = %q, want text debug record", out)
	}
}

func TestInvalidEnvLevelIgnored(t *testing.T) {
	t.Setenv(EnvLogLevel, "chatty")
	t.Setenv(EnvLogFormat, "")

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn"})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}
}

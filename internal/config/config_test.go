package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eim-dev/eim-client/internal/errors"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.RequestTimeout, cfg.WriteTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(`
backend_url = "ws://daw.local:9000"
request_timeout = "750ms"
log_level = "DEBUG"
log_format = "json"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.BackendURL != "ws://daw.local:9000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 750*time.Millisecond {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	// Keys that were not set keep their defaults.
	if cfg.WriteTimeout != 10*time.Second || cfg.StatusAddr != DefaultStatusAddr {
		t.Errorf("defaults lost: %+v", cfg)
	}

	cc := cfg.ClientConfig()
	if cc.RequestTimeout != 750*time.Millisecond {
		t.Errorf("ClientConfig().RequestTimeout = %v", cc.RequestTimeout)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"bad toml", `backend_url = `, "E101"},
		{"bad duration", `request_timeout = "soon"`, "E102"},
		{"bad scheme", `backend_url = "http://x"`, "E102"},
		{"bad format", `log_format = "xml"`, "E102"},
		{"unknown key", `colour = "red"`, "E102"},
		{"wrong type", `request_timeout = 5`, "E101"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.data)
			var ce *errors.CLIError
			if !stderrors.As(err, &ce) {
				t.Fatalf("err = %v, want CLIError", err)
			}
			if ce.Code != tc.code {
				t.Errorf("code = %s, want %s", ce.Code, tc.code)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eimctl.toml")
	if err := os.WriteFile(path, []byte(`status_addr = ":0"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.StatusAddr != ":0" || cfg.Path() != path {
		t.Errorf("cfg = %+v", cfg)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	var ce *errors.CLIError
	if !stderrors.As(err, &ce) || ce.Code != "E100" {
		t.Errorf("missing file err = %v, want E100", err)
	}
}

// Package logging builds the slog logger used by eimctl.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment overrides. They win over the config file.
const (
	EnvLogLevel  = "EIM_LOG_LEVEL"
	EnvLogFormat = "EIM_LOG_FORMAT"
)

// Options selects the handler.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// New returns a logger writing to w, after applying environment
// overrides to opts.
func New(w io.Writer, opts Options) *slog.Logger {
	applyEnvOverrides(&opts)
	level, _ := ParseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(h)
}

// Configure builds a stderr logger and installs it as the slog default.
func Configure(opts Options) *slog.Logger {
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}

func applyEnvOverrides(opts *Options) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if _, ok := ParseLevel(v); ok {
			opts.Level = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		opts.Format = v
	}
}

// ParseLevel maps a level name to a slog level. Unknown names give Info
// and false.
func ParseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, raw != ""
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

package client

import (
	"log/slog"
	"time"
)

// Config holds configuration for a Client.
type Config struct {
	// RequestTimeout bounds how long a correlated command waits for its
	// reply. The channel stays usable after a timeout.
	// Default: 5 seconds.
	RequestTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HandshakeTimeout is the maximum time for the WebSocket upgrade.
	// Default: 10 seconds.
	HandshakeTimeout time.Duration

	// MaxMessageSize is the largest frame accepted from the backend.
	// Default: 8MB.
	MaxMessageSize int64

	// Logger receives client diagnostics.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics records frame and request counters. Nil disables metrics.
	Metrics *Metrics

	// TracerName names the OpenTelemetry tracer used for request spans.
	// Default: "eim-client".
	TracerName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout:   5 * time.Second,
		WriteTimeout:     10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		MaxMessageSize:   8 * 1024 * 1024,
		Logger:           slog.Default(),
		TracerName:       defaultTracerName,
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults fills zero fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := c.Clone()
	if out.RequestTimeout <= 0 {
		out.RequestTimeout = def.RequestTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = def.WriteTimeout
	}
	if out.HandshakeTimeout <= 0 {
		out.HandshakeTimeout = def.HandshakeTimeout
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = def.MaxMessageSize
	}
	if out.Logger == nil {
		out.Logger = def.Logger
	}
	if out.TracerName == "" {
		out.TracerName = def.TracerName
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/eim-dev/eim-client/internal/errors"
	"github.com/eim-dev/eim-client/pkg/client"
)

const (
	// DefaultBackendURL is where the EIM backend listens by default.
	DefaultBackendURL = "ws://127.0.0.1:8088"

	// DefaultStatusAddr is the listen address of the watch status server.
	DefaultStatusAddr = "127.0.0.1:9090"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "eim"
)

// Config is the resolved eimctl configuration.
type Config struct {
	BackendURL       string
	RequestTimeout   time.Duration
	WriteTimeout     time.Duration
	LogLevel         string
	LogFormat        string
	StatusAddr       string
	MetricsNamespace string

	path string
}

// New returns a Config holding the defaults.
func New() *Config {
	def := client.DefaultConfig()
	return &Config{
		BackendURL:       DefaultBackendURL,
		RequestTimeout:   def.RequestTimeout,
		WriteTimeout:     def.WriteTimeout,
		LogLevel:         "info",
		LogFormat:        "text",
		StatusAddr:       DefaultStatusAddr,
		MetricsNamespace: DefaultMetricsNamespace,
	}
}

type fileConfig struct {
	BackendURL       string `toml:"backend_url"`
	RequestTimeout   string `toml:"request_timeout"`
	WriteTimeout     string `toml:"write_timeout"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
	StatusAddr       string `toml:"status_addr"`
	MetricsNamespace string `toml:"metrics_namespace"`
}

// LoadFile reads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path).
				WithSuggestion("Create the file or drop --config to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse reads configuration from TOML text on top of the defaults.
func Parse(data string) (*Config, error) {
	cfg := New()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New("E102").
			WithDetail(fmt.Sprintf("Unknown key %q", undecoded[0].String()))
	}

	if meta.IsDefined("backend_url") {
		cfg.BackendURL = strings.TrimSpace(raw.BackendURL)
	}
	if meta.IsDefined("request_timeout") {
		d, err := parseDuration("request_timeout", raw.RequestTimeout)
		if err != nil {
			return nil, err
		}
		cfg.RequestTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := parseDuration("write_timeout", raw.WriteTimeout)
		if err != nil {
			return nil, err
		}
		cfg.WriteTimeout = d
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	if meta.IsDefined("status_addr") {
		cfg.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}
	if meta.IsDefined("metrics_namespace") {
		cfg.MetricsNamespace = strings.TrimSpace(raw.MetricsNamespace)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("E102").
			WithDetail(fmt.Sprintf("parse %s: %v", key, err)).
			WithSuggestion(`Use Go duration syntax such as "5s" or "250ms"`)
	}
	return d, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BackendURL, "ws://") && !strings.HasPrefix(c.BackendURL, "wss://") {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("backend_url %q is not a ws:// or wss:// URL", c.BackendURL))
	}
	if c.RequestTimeout <= 0 || c.WriteTimeout <= 0 {
		return errors.New("E102").WithDetail("timeouts must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("E102").
			WithDetail(fmt.Sprintf("log_format %q is not text or json", c.LogFormat))
	}
	return nil
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// ClientConfig builds the client configuration. Logger and Metrics are
// left for the caller.
func (c *Config) ClientConfig() *client.Config {
	cc := client.DefaultConfig()
	cc.RequestTimeout = c.RequestTimeout
	cc.WriteTimeout = c.WriteTimeout
	return cc
}

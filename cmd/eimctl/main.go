package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eim-dev/eim-client/internal/config"
	"github.com/eim-dev/eim-client/internal/errors"
	"github.com/eim-dev/eim-client/internal/logging"
	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state every subcommand shares.
type app struct {
	configPath string
	backend    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "eimctl",
		Short: "Command-line client for the EIM audio backend",
		Long: `eimctl talks to a running EIM backend over its binary WebSocket
protocol. It can list and edit tracks, read the backend configuration,
start plugin scans, and mirror the live session state over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a TOML config file")
	flags.StringVarP(&a.backend, "backend", "b", "", "Backend WebSocket URL (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		watchCmd(a),
		tracksCmd(a),
		configCmd(a),
		pluginsCmd(a),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, classify(err))
		os.Exit(1)
	}
}

// setup resolves configuration and logging. Flags win over the file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.New()
	if a.configPath != "" {
		loaded, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("backend") {
		cfg.BackendURL = a.backend
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return nil
}

// connect dials the backend with the resolved configuration.
func (a *app) connect(ctx context.Context, metrics *client.Metrics) (*client.Client, error) {
	cc := a.cfg.ClientConfig()
	cc.Logger = a.logger
	cc.Metrics = metrics

	c, err := client.Dial(ctx, a.cfg.BackendURL, cc)
	if err != nil {
		return nil, errors.New("E130").
			WithDetail(fmt.Sprintf("Could not connect to %s", a.cfg.BackendURL)).
			WithSuggestion("Check that the EIM backend is running and --backend points at it").
			Wrap(err)
	}
	a.logger.Debug("connected", "backend", a.cfg.BackendURL, "client_id", c.ID())
	return c, nil
}

// classify maps client errors onto registered CLI error codes.
func classify(err error) error {
	var ce *errors.CLIError
	switch {
	case stderrors.As(err, &ce):
		return err
	case stderrors.Is(err, client.ErrTimeout):
		return errors.New("E133").Wrap(err)
	case stderrors.Is(err, client.ErrChannelClosed):
		return errors.New("E131").Wrap(err)
	case stderrors.Is(err, client.ErrBackend):
		return errors.New("E132").WithDetail(err.Error()).Wrap(err)
	case stderrors.Is(err, protocol.ErrInvalidArgument), stderrors.Is(err, client.ErrUnknownTrack):
		return errors.New("E160").WithDetail(err.Error()).Wrap(err)
	}
	return err
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

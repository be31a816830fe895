package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipekit/config"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
	"github.com/kbukum/pipekit/version"
)

// rootState carries telemetry teardown hooks from the persistent pre-run
// to main, which flushes them on every exit path.
type rootState struct {
	shutdowns []func(context.Context) error
}

// newRootCmd creates the root command for pipekit.
func newRootCmd() (*cobra.Command, *rootState) {
	state := &rootState{}

	rootCmd := &cobra.Command{
		Use:   "pipekit",
		Short: "Composable record pipelines for text files, directories, and images",
		Long: `pipekit streams records from sources through transforms into sinks.

A pipeline reads one record at a time. Each record carries its payload,
the resource it came from, and its sequence number within that resource.
Pipelines are declared in YAML definition files (pipekit run) or composed
from flags (pipekit scan).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return state.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("settings", "s", "", "Settings file (default: ./pipekit.yml)")
	flags.StringP("log-level", "l", "", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.Bool("otel", false, "Export traces and metrics over OTLP")
	flags.String("otel-endpoint", "", "OTLP HTTP endpoint (host:port)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, state
}

// setup loads process settings, applies flag overrides, and initializes
// logging and, when enabled, the OTLP trace and metric exporters.
func (s *rootState) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if path, _ := cmd.Flags().GetString("settings"); path != "" {
		opts = append(opts, config.WithSettingsFile(path))
	}
	settings, err := config.LoadSettings(opts...)
	if err != nil {
		return err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		settings.Logging.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		settings.Logging.Format = format
	}
	if cmd.Flags().Changed("otel") {
		settings.Otel.Enabled, _ = cmd.Flags().GetBool("otel")
	}
	if endpoint, _ := cmd.Flags().GetString("otel-endpoint"); endpoint != "" {
		settings.Otel.Endpoint = endpoint
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger.Init(&settings.Logging)

	if !settings.Otel.Enabled {
		return nil
	}
	return s.initTelemetry(cmd.Context(), settings.Otel)
}

func (s *rootState) initTelemetry(ctx context.Context, otel config.OtelSettings) error {
	tracerCfg := observability.DefaultTracerConfig("pipekit")
	tracerCfg.ServiceVersion = version.Short()
	tracerCfg.Endpoint = otel.Endpoint
	tracerCfg.Insecure = otel.Insecure

	tp, err := observability.InitTracer(ctx, tracerCfg)
	if err != nil {
		return err
	}
	s.shutdowns = append(s.shutdowns, tp.Shutdown)

	meterCfg := observability.DefaultMeterConfig("pipekit")
	meterCfg.ServiceVersion = version.Short()
	meterCfg.Endpoint = otel.Endpoint
	meterCfg.Insecure = otel.Insecure

	mp, err := observability.InitMeter(ctx, &meterCfg)
	if err != nil {
		return err
	}
	s.shutdowns = append(s.shutdowns, mp.Shutdown)

	return nil
}

// teardown flushes telemetry exporters in reverse registration order.
// Safe to call when telemetry was never initialized.
func (s *rootState) teardown() error {
	if len(s.shutdowns) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var firstErr error
	for i := len(s.shutdowns) - 1; i >= 0; i-- {
		if err := s.shutdowns[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.shutdowns = nil
	return firstErr
}

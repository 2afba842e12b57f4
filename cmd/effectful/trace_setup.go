package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"effectful/internal/trace"
)

// traceConfig turns the --trace* flags into a tracer config. A bare --trace
// path without --trace-level means phase level; stdout traces go to "-".
func traceConfig(cmd *cobra.Command) (trace.Config, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg trace.Config

	level, err := flags.GetString("trace-level")
	if err == nil {
		cfg.Level, err = trace.ParseLevel(level)
	}
	if err != nil {
		return cfg, fmt.Errorf("invalid trace level: %w", err)
	}
	if cfg.OutputPath, err = flags.GetString("trace"); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff {
		if cfg.OutputPath == "" {
			return cfg, nil
		}
		cfg.Level = trace.LevelPhase
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "-"
	}

	mode, errMode := flags.GetString("trace-mode")
	format, errFormat := flags.GetString("trace-format")
	ring, errRing := flags.GetInt("trace-ring-size")
	beat, errBeat := flags.GetDuration("trace-heartbeat")
	if err := errors.Join(errMode, errFormat, errRing, errBeat); err != nil {
		return cfg, fmt.Errorf("failed to read trace flags: %w", err)
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, fmt.Errorf("invalid trace mode: %w", err)
	}
	if cfg.Format, err = trace.ParseFormat(format); err != nil {
		return cfg, fmt.Errorf("invalid trace format: %w", err)
	}
	cfg.RingSize, cfg.Heartbeat = ring, beat
	return cfg, nil
}

// setupTracing installs the configured tracer in the command context and
// returns the function that shuts it down. Shutdown problems are reported,
// never returned: the command's own outcome decides the exit status.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	beat := trace.StartHeartbeat(tracer, cfg.Heartbeat)

	return func() {
		beat.Stop()
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

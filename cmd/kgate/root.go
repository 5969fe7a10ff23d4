// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Log output formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	logFormat string
	verbose   bool
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// independent between invocations.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "kgate",
		Short: "Compare gate strategies for a kernel-weighted combiner",
		Long: `kgate trains several contender models on synthetic data and combines them
with a kernel-weighted gating combiner, once per gate strategy, reporting the
test error of each contender and of each combined prediction.

Examples:
  kgate run                              # default demonstration run
  kgate run --models 5 --tries 20        # include the noise and wild models
  kgate run --config run.yaml --seed 42  # file settings, seed overridden
  kgate config --samples 50              # print the effective settings`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logFormatText, "Log format (text, json)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every fit at debug level")

	cmd.AddCommand(newRunCmd(opts), newConfigCmd())

	return cmd
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// newLogger writes structured logs to w; verbose lowers the level to debug.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch format {
	case logFormatText:
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, logFormatText, logFormatJSON)
	}
}

// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/kgate/experiment"
	"github.com/spf13/cobra"
)

// configFlags are the run settings that can be given on the command line.
// A flag overrides the config file only when it was set explicitly.
type configFlags struct {
	path    string
	samples int
	models  int
	tries   int
	std     float64
	seed    uint64
	timeout time.Duration
	method  string
}

func (f *configFlags) register(cmd *cobra.Command) {
	def := experiment.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&f.path, "config", "c", "", "YAML file with run settings")
	flags.IntVarP(&f.samples, "samples", "n", def.Samples, "Training cases per trial")
	flags.IntVarP(&f.models, "models", "m", def.Models, "Contender models (4th trains on noise, 5th on scaled targets)")
	flags.IntVarP(&f.tries, "tries", "t", def.Tries, "Independent trials")
	flags.Float64Var(&f.std, "std", def.Std, "Noise standard deviation of the target")
	flags.Uint64Var(&f.seed, "seed", def.Seed, "Random seed")
	flags.DurationVar(&f.timeout, "timeout", def.Timeout, "Bound on the whole run (0 means none)")
	flags.StringVar(&f.method, "method", def.Method, "Multi-gate bandwidth search (powell, neldermead)")
}

// resolve loads the config file (or defaults), applies explicitly set flags
// and validates the result.
func (f *configFlags) resolve(cmd *cobra.Command) (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	if f.path != "" {
		var err error
		if cfg, err = experiment.LoadConfig(f.path); err != nil {
			return experiment.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("samples") {
		cfg.Samples = f.samples
	}
	if flags.Changed("models") {
		cfg.Models = f.models
	}
	if flags.Changed("tries") {
		cfg.Tries = f.tries
	}
	if flags.Changed("std") {
		cfg.Std = f.std
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if flags.Changed("method") {
		cfg.Method = f.method
	}

	if err := cfg.Validate(); err != nil {
		return experiment.Config{}, err
	}

	return cfg, nil
}

func newRunCmd(root *rootOptions) *cobra.Command {
	flags := &configFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the gate strategy comparison",
		Long: `Run trains the contenders and fits one combiner per gate strategy in every
trial, then prints the mean test error of each contender and each strategy.
When --timeout expires, the trials completed so far are reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), root.logFormat, root.verbose)
			if err != nil {
				return err
			}

			runner, err := experiment.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("run started",
				"samples", cfg.Samples, "models", cfg.Models, "tries", cfg.Tries,
				"std", cfg.Std, "seed", cfg.Seed, "method", cfg.Method)

			sum, err := runner.Run(cmd.Context())
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if err != nil {
				logger.Warn("run timed out", "completed", sum.Trials, "requested", cfg.Tries, "timeout", cfg.Timeout)
			}

			return printSummary(cmd.OutOrStdout(), sum)
		},
	}
	flags.register(cmd)

	return cmd
}

// printSummary writes the contender and strategy tables.
func printSummary(out io.Writer, sum experiment.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Trials completed:\t%d\n", sum.Trials)
	if sum.Trials == 0 {
		return w.Flush()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "MODEL\tKIND\tTEST MSE")
	for j, e := range sum.RawErrors {
		fmt.Fprintf(w, "%d\t%s\t%.6g\n", j+1, sum.Kinds[j], e)
	}
	fmt.Fprintf(w, "mean\t\t%.6g\n", sum.MeanRawError)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "GATE\tTEST MSE\tSTD ERR")
	for _, s := range sum.Strategies {
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\n", s.Strategy, s.MeanError, s.StdErr)
	}

	return w.Flush()
}

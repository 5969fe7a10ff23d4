// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/kgate/gating"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Model indices that are deliberately trained on bad data.
const (
	noiseModel = 3 // trained on pure-noise targets
	wildModel  = 4 // trained on targets scaled by wildScale
	wildScale  = 1000.0
)

// Trial is the outcome of one synthetic dataset.
type Trial struct {
	Index      int
	RawErrors  []float64 // test MSE of each contender
	Strategies []Strategy
	Errors     []float64 // test MSE of the combiner, aligned with Strategies
}

// StrategyResult aggregates one strategy over completed trials.
type StrategyResult struct {
	Strategy  Strategy
	MeanError float64
	StdErr    float64 // standard error of MeanError; 0 with fewer than two trials
}

// Summary aggregates completed trials.
type Summary struct {
	Trials       int
	Kinds        []Kind    // contender model family by index
	RawErrors    []float64 // mean test MSE of each contender
	MeanRawError float64   // mean of RawErrors
	Strategies   []StrategyResult
}

// Runner executes a Config. It is not safe for concurrent use; each Run
// draws from the runner's own random stream.
type Runner struct {
	cfg    Config
	method gating.Method
	logger *slog.Logger
	gen    *generator
}

// NewRunner validates cfg and seeds the random stream. A nil logger discards.
func NewRunner(cfg Config, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	method, _ := cfg.GatingMethod() // validated above
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{cfg: cfg, method: method, logger: logger, gen: newGenerator(cfg.Seed)}, nil
}

// Run performs cfg.Tries trials and returns the summary of those completed.
// The context (bounded by cfg.Timeout when set) is checked between trials
// and before each strategy fit; on cancellation the partial summary is
// returned together with the context error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	trials := make([]Trial, 0, r.cfg.Tries)
	for t := 0; t < r.cfg.Tries; t++ {
		if err := ctx.Err(); err != nil {
			return summarize(r.cfg, trials), fmt.Errorf("experiment: stopped after %d of %d trials: %w", len(trials), r.cfg.Tries, err)
		}
		trial, err := r.RunTrial(ctx, t)
		if err != nil {
			return summarize(r.cfg, trials), err
		}
		trials = append(trials, trial)

		attrs := []any{"trial", t + 1, "raw", trial.RawErrors}
		for i, s := range trial.Strategies {
			attrs = append(attrs, s.String(), trial.Errors[i])
		}
		r.logger.Info("trial done", attrs...)
	}

	return summarize(r.cfg, trials), nil
}

// RunTrial draws one dataset, trains the contenders and scores every
// strategy. Strategies are fitted concurrently; all random draws happen
// before fitting starts, so results depend only on the seed.
func (r *Runner) RunTrial(ctx context.Context, index int) (Trial, error) {
	var (
		cfg   = r.cfg
		m     = cfg.Models
		train = r.gen.samples(cfg.Samples, cfg.Std)
		bad   []Sample
		wild  []Sample
	)
	if m > noiseModel {
		bad = r.gen.noisy(train)
	}
	if m > wildModel {
		wild = scaled(train, wildScale)
	}
	test := r.gen.samples(cfg.TestFactor*cfg.Samples, cfg.Std)

	// Stage 1: train contenders and record their raw test error.
	trial := Trial{Index: index, RawErrors: make([]float64, m)}
	trainPred := predictions{m: m, out: make([]float64, len(train)*m)}
	testPred := predictions{m: m, out: make([]float64, len(test)*m)}
	for j := 0; j < m; j++ {
		model := NewModel(kindFor(j), cfg.Neighbors)
		set := train
		switch j {
		case noiseModel:
			set = bad
		case wildModel:
			set = wild
		}
		if err := model.Train(set); err != nil {
			if !errors.Is(err, ErrMeanFallback) {
				return Trial{}, err
			}
			r.logger.Warn("contender fell back to the training mean",
				"trial", index+1, "model", j+1, "kind", model.Kind().String(), "err", err)
		}
		for i, s := range train {
			trainPred.out[i*m+j] = model.Predict(s.X1, s.X2)
		}
		var sse float64
		for i, s := range test {
			p := model.Predict(s.X1, s.X2)
			testPred.out[i*m+j] = p
			sse += (p - s.Y) * (p - s.Y)
		}
		trial.RawErrors[j] = sse / float64(len(test))
	}

	// Stage 2: gate arrays (consumes random draws for the random strategy).
	sets := buildGates(Strategies(m), train, test, trainPred, testPred, r.gen)
	target := make([]float64, len(train))
	for i, s := range train {
		target[i] = s.Y
	}

	// Stage 3: fit and score every strategy.
	trial.Strategies = make([]Strategy, len(sets))
	trial.Errors = make([]float64, len(sets))
	g, gctx := errgroup.WithContext(ctx)
	for k, gs := range sets {
		trial.Strategies[k] = gs.strategy
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mse, err := r.score(gs, target, trainPred, testPred, test)
			if err != nil {
				return fmt.Errorf("experiment: trial %d, %s gate: %w", index+1, gs.strategy, err)
			}
			trial.Errors[k] = mse
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Trial{}, err
	}

	return trial, nil
}

// score fits a combiner on one gate set and returns its test MSE.
func (r *Runner) score(gs gateSet, target []float64, trainPred, testPred predictions, test []Sample) (float64, error) {
	n := len(target)
	c, err := gating.New(gs.g, trainPred.m, n, gs.train, trainPred.out, target,
		gating.WithMethod(r.method),
		gating.WithLogger(r.logger.With("strategy", gs.strategy.String())),
	)
	if err != nil {
		return 0, err
	}

	var sse float64
	for i, s := range test {
		y, err := c.Predict(gs.test[i*gs.g:(i+1)*gs.g], testPred.row(i))
		if err != nil {
			return 0, err
		}
		sse += (y - s.Y) * (y - s.Y)
	}

	return sse / float64(len(test)), nil
}

// summarize averages completed trials.
func summarize(cfg Config, trials []Trial) Summary {
	sum := Summary{Trials: len(trials), Kinds: make([]Kind, cfg.Models)}
	for j := range sum.Kinds {
		sum.Kinds[j] = kindFor(j)
	}
	if len(trials) == 0 {
		return sum
	}

	col := make([]float64, len(trials))
	sum.RawErrors = make([]float64, cfg.Models)
	for j := range sum.RawErrors {
		for t, tr := range trials {
			col[t] = tr.RawErrors[j]
		}
		sum.RawErrors[j] = stat.Mean(col, nil)
	}
	sum.MeanRawError = stat.Mean(sum.RawErrors, nil)

	for k, s := range trials[0].Strategies {
		for t, tr := range trials {
			col[t] = tr.Errors[k]
		}
		res := StrategyResult{Strategy: s}
		if len(col) < 2 {
			res.MeanError = col[0]
		} else {
			mean, std := stat.MeanStdDev(col, nil)
			res.MeanError = mean
			res.StdErr = stat.StdErr(std, float64(len(col)))
		}
		if math.IsNaN(res.StdErr) {
			res.StdErr = 0
		}
		sum.Strategies = append(sum.Strategies, res)
	}

	return sum
}

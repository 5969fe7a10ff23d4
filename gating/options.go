// SPDX-License-Identifier: MIT

// Package gating: functional configuration for Combiner construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values,
//   - gatherOptions, which applies setters over the defaults.

package gating

import (
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

// Objective shape.
const (
	// DefaultLogBandwidthLimit is L in bandwidth = exp(clamp(param, −L, L)).
	DefaultLogBandwidthLimit = 8.0

	// DefaultPenaltyCoefficient is P in the boundary penalty P·(|param| − L).
	DefaultPenaltyCoefficient = 10.0

	// DefaultExcludeRadius is the leave-near-out radius used while fitting.
	// 0 leaves out exactly the case being scored.
	DefaultExcludeRadius = 0
)

// Fitter settings.
const (
	// DefaultMethod is the multi-gate search.
	DefaultMethod = MethodPowell

	// DefaultMaxIterations caps Brent (one gate) and Powell/Nelder–Mead (several gates).
	DefaultMaxIterations = 10

	// DefaultScanLow and DefaultScanHigh bound the single-gate grid scan in log-bandwidth.
	DefaultScanLow  = -3.0
	DefaultScanHigh = 3.0

	// DefaultScanPoints is the single-gate grid size.
	DefaultScanPoints = 15

	// DefaultTolerance1D is the Brent relative tolerance.
	DefaultTolerance1D = 1e-5

	// DefaultToleranceND is the Powell/Nelder–Mead relative tolerance.
	DefaultToleranceND = 1e-4
)

// ---------- Internal panic messages ----------

const (
	panicLogLimitInvalid   = "gating: WithLogBandwidthLimit: limit must be finite and > 0"
	panicPenaltyInvalid    = "gating: WithPenaltyCoefficient: coefficient must be finite and ≥ 0"
	panicRadiusInvalid     = "gating: WithExcludeRadius: radius must be ≥ 0"
	panicMethodInvalid     = "gating: WithMethod: only MethodPowell or MethodNelderMead may be requested"
	panicIterationsInvalid = "gating: WithMaxIterations: iterations must be > 0"
	panicBandwidthsInvalid = "gating: WithBandwidths: bandwidths must be non-empty, finite and > 0"
	panicLoggerNil         = "gating: WithLogger: logger must not be nil"
)

// ---------- Public option type ----------

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; New resolves ...Option through gatherOptions.
type Options struct {
	logLimit      float64      // DefaultLogBandwidthLimit
	penalty       float64      // DefaultPenaltyCoefficient
	excludeRadius int          // DefaultExcludeRadius
	method        Method       // DefaultMethod
	maxIterations int          // DefaultMaxIterations
	bandwidths    []float64    // nil ⇒ fit
	logger        *slog.Logger // discard
}

// WithLogBandwidthLimit sets L, the clamp on log-bandwidth parameters.
// Parameters beyond ±L are clamped and penalized.
func WithLogBandwidthLimit(limit float64) Option {
	if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= 0 {
		panic(panicLogLimitInvalid)
	}

	return func(o *Options) { o.logLimit = limit }
}

// WithPenaltyCoefficient sets P, the slope of the boundary penalty.
// Zero turns the penalty off (the clamp still applies).
func WithPenaltyCoefficient(p float64) Option {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		panic(panicPenaltyInvalid)
	}

	return func(o *Options) { o.penalty = p }
}

// WithExcludeRadius sets the leave-near-out radius used by the fitting
// objective. A radius r leaves out every case within circular index
// distance r of the case being scored; use r > 0 for serially correlated data.
func WithExcludeRadius(r int) Option {
	if r < 0 {
		panic(panicRadiusInvalid)
	}

	return func(o *Options) { o.excludeRadius = r }
}

// WithMethod selects the multi-gate search. A single gate always uses the
// grid scan plus Brent.
func WithMethod(m Method) Option {
	if m != MethodPowell && m != MethodNelderMead {
		panic(panicMethodInvalid)
	}

	return func(o *Options) { o.method = m }
}

// WithMaxIterations caps the optimizer's major iterations.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithBandwidths installs caller bandwidths and skips fitting. The slice is
// copied; its length must equal the gate count (checked by New).
func WithBandwidths(bw ...float64) Option {
	if len(bw) == 0 {
		panic(panicBandwidthsInvalid)
	}
	for _, v := range bw {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			panic(panicBandwidthsInvalid)
		}
	}
	cp := append([]float64(nil), bw...)

	return func(o *Options) { o.bandwidths = cp }
}

// WithLogger routes fitting diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// DefaultOptions returns the effective configuration with no setters applied.
func DefaultOptions() Options {
	return gatherOptions()
}

// gatherOptions applies user setters over the defaults, last writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		logLimit:      DefaultLogBandwidthLimit,
		penalty:       DefaultPenaltyCoefficient,
		excludeRadius: DefaultExcludeRadius,
		method:        DefaultMethod,
		maxIterations: DefaultMaxIterations,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

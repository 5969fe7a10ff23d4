// SPDX-License-Identifier: MIT

package optimize

import (
	"errors"
	"math"
)

// Sentinel errors. Non-convergence is never reported through these.
var (
	// ErrBadDomain indicates a malformed search interval or bracket
	// (non-finite bounds, low ≥ high, fewer than 3 scan points).
	ErrBadDomain = errors.New("optimize: invalid search domain")

	// ErrEmptyStart indicates a zero-length starting point for an N-D search.
	ErrEmptyStart = errors.New("optimize: starting point is empty")

	// ErrBadSettings indicates nonsensical Settings (non-positive iteration
	// cap, negative or non-finite tolerances).
	ErrBadSettings = errors.New("optimize: invalid settings")

	// ErrNilFunc indicates a nil objective.
	ErrNilFunc = errors.New("optimize: objective function is nil")
)

// Func1D is a scalar objective of one variable.
type Func1D func(x float64) float64

// FuncND is a scalar objective of a vector. Implementations must not retain
// or modify x after returning.
type FuncND func(x []float64) float64

// Settings configures the iterative minimizers (Brent, Powell, NelderMead).
//
// Fields:
//   - MaxIterations  - cap on major iterations (> 0). Hitting it is not an error.
//   - Tolerance      - relative convergence tolerance (≥ 0).
//   - Epsilon        - absolute tolerance floor added to relative tests (≥ 0).
//   - CriterionLimit - stop as soon as f ≤ CriterionLimit; -Inf disables.
//   - InitialStep    - trial step length for line brackets and the simplex size (> 0).
type Settings struct {
	MaxIterations  int
	Tolerance      float64
	Epsilon        float64
	CriterionLimit float64
	InitialStep    float64
}

// DefaultSettings returns general-purpose settings.
//
// Defaults:
//   - MaxIterations:  100
//   - Tolerance:      1e-6
//   - Epsilon:        1e-10
//   - CriterionLimit: -Inf (disabled)
//   - InitialStep:    1
func DefaultSettings() Settings {
	return Settings{
		MaxIterations:  100,
		Tolerance:      1e-6,
		Epsilon:        1e-10,
		CriterionLimit: math.Inf(-1),
		InitialStep:    1,
	}
}

// validate rejects nonsensical settings.
func (s Settings) validate() error {
	if s.MaxIterations <= 0 {
		return ErrBadSettings
	}
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) || math.IsInf(s.Tolerance, 0) {
		return ErrBadSettings
	}
	if s.Epsilon < 0 || math.IsNaN(s.Epsilon) || math.IsInf(s.Epsilon, 0) {
		return ErrBadSettings
	}
	if math.IsNaN(s.CriterionLimit) {
		return ErrBadSettings
	}
	if !(s.InitialStep > 0) || math.IsInf(s.InitialStep, 0) {
		return ErrBadSettings
	}

	return nil
}

// ScanOptions configures GlobalScan.
//
// Fields:
//   - Points         - number of grid points, including both ends (≥ 3).
//   - MaxExtensions  - how many extra grid steps to take past an edge minimum (≥ 0).
//   - CriterionLimit - return immediately once a grid value is ≤ limit; -Inf disables.
type ScanOptions struct {
	Points         int
	MaxExtensions  int
	CriterionLimit float64
}

// DefaultScanOptions returns 15 arithmetic points, 20 edge extensions and no
// criterion limit.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Points:         15,
		MaxExtensions:  20,
		CriterionLimit: math.Inf(-1),
	}
}

// Bracket is a triple A ≤ B ≤ C (or C ≤ B ≤ A) with F(B) no larger than the
// values at the ends, except when a search stopped early; B is always the best
// abscissa seen. A == B or B == C marks an edge minimum the scan could not
// walk past. Evaluations counts objective calls spent building it.
type Bracket struct {
	A, B, C     float64
	FA, FB, FC  float64
	Evaluations int
}

// Result1D is the outcome of a 1-D minimization.
type Result1D struct {
	X           float64 // best abscissa
	F           float64 // objective at X
	Iterations  int     // major iterations performed
	Evaluations int     // objective calls made by this minimizer
	Converged   bool    // tolerance or criterion limit reached before MaxIterations
}

// Result is the outcome of an N-D minimization.
type Result struct {
	X           []float64 // best point (owned by the caller)
	F           float64   // objective at X
	Iterations  int       // major iterations performed
	Evaluations int       // objective calls made by this minimizer
	Converged   bool      // tolerance or criterion limit reached before MaxIterations
}

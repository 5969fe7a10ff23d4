// SPDX-License-Identifier: MIT

package optimize

import "math"

// GlobalScan evaluates f on a grid over [low, high] and returns a bracket
// around the best grid point.
//
// Algorithm:
//  1. Evaluate f at opts.Points equally spaced abscissae.
//  2. Pick the first grid point with the smallest value.
//  3. Interior best → bracket (x[i-1], x[i], x[i+1]).
//  4. Edge best → keep stepping outward with the grid step until f stops
//     decreasing or opts.MaxExtensions steps are spent. If f kept decreasing,
//     the bracket is degenerate on the far side (B == C).
//
// Any grid value ≤ opts.CriterionLimit ends the scan with the degenerate
// bracket A == B == C at that point.
//
// Errors:
//   - ErrNilFunc    - f == nil.
//   - ErrBadDomain  - non-finite bounds, low ≥ high, or Points < 3.
//   - ErrBadSettings - MaxExtensions < 0 or NaN CriterionLimit.
//
// Complexity: O(Points + MaxExtensions) evaluations of f, O(Points) memory.
func GlobalScan(f Func1D, low, high float64, opts ScanOptions) (Bracket, error) {
	if f == nil {
		return Bracket{}, ErrNilFunc
	}
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) || low >= high {
		return Bracket{}, ErrBadDomain
	}
	if opts.Points < 3 {
		return Bracket{}, ErrBadDomain
	}
	if opts.MaxExtensions < 0 || math.IsNaN(opts.CriterionLimit) {
		return Bracket{}, ErrBadSettings
	}

	var (
		n     = opts.Points
		xs    = make([]float64, n)
		fs    = make([]float64, n)
		step  = (high - low) / float64(n-1)
		evals int
		ibest int
		i     int
	)

	// Stage 1: coarse grid.
	for i = 0; i < n; i++ {
		if i == n-1 {
			xs[i] = high // pin the last point to avoid drift
		} else {
			xs[i] = low + float64(i)*step
		}
		fs[i] = f(xs[i])
		evals++
		if fs[i] < fs[ibest] {
			ibest = i
		}
		if fs[i] <= opts.CriterionLimit {
			return pointBracket(xs[i], fs[i], evals), nil
		}
	}

	// Stage 2: interior minimum is already bracketed.
	if ibest > 0 && ibest < n-1 {
		return Bracket{
			A: xs[ibest-1], B: xs[ibest], C: xs[ibest+1],
			FA: fs[ibest-1], FB: fs[ibest], FC: fs[ibest+1],
			Evaluations: evals,
		}, nil
	}

	// Stage 3: edge minimum, walk outward.
	var (
		dir           = 1.0
		inner, finner = xs[n-2], fs[n-2]
		best, fbest   = xs[n-1], fs[n-1]
		x, fx         float64
		k             int
	)
	if ibest == 0 {
		dir = -1
		inner, finner = xs[1], fs[1]
		best, fbest = xs[0], fs[0]
	}
	for k = 0; k < opts.MaxExtensions; k++ {
		x = best + dir*step
		fx = f(x)
		evals++
		if fx < fbest && fx <= opts.CriterionLimit {
			return pointBracket(x, fx, evals), nil
		}
		if !(fx < fbest) {
			// f turned upward (or stalled): best is bracketed by inner and x.
			return Bracket{A: inner, B: best, C: x, FA: finner, FB: fbest, FC: fx, Evaluations: evals}, nil
		}
		inner, finner = best, fbest
		best, fbest = x, fx
	}

	// Still decreasing at the last extension: degenerate far side.
	return Bracket{A: inner, B: best, C: best, FA: finner, FB: fbest, FC: fbest, Evaluations: evals}, nil
}

// pointBracket is the degenerate bracket A == B == C at x.
func pointBracket(x, fx float64, evals int) Bracket {
	return Bracket{A: x, B: x, C: x, FA: fx, FB: fx, FC: fx, Evaluations: evals}
}

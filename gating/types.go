// SPDX-License-Identifier: MIT

package gating

import "errors"

// Sentinel errors. Callers match them with errors.Is; messages are wrapped
// with call-site context via %w.
var (
	// ErrInvalidArgument is the construction failure: non-positive counts,
	// array lengths inconsistent with the counts, non-finite values, or
	// caller bandwidths of the wrong length.
	ErrInvalidArgument = errors.New("gating: invalid argument")

	// ErrDimensionMismatch indicates a query slice whose length differs from
	// the gate count (queryGates) or the contender count (queryContenders).
	ErrDimensionMismatch = errors.New("gating: query dimension mismatch")

	// ErrExcludeIndex indicates an exclusion index ≥ the number of cases.
	// Any negative index means "no exclusion" and is accepted.
	ErrExcludeIndex = errors.New("gating: exclude index out of range")

	// ErrExcludeRadius indicates a negative exclusion radius.
	ErrExcludeRadius = errors.New("gating: exclude radius is negative")

	// ErrCaseIndex indicates TrainingSet.Case was asked for a missing case.
	ErrCaseIndex = errors.New("gating: case index out of range")
)

// Numeric policy of the kernel evaluator.
const (
	// errFloor is the smallest accumulated local error that is inverted;
	// anything at or below it is treated as a perfect local record.
	errFloor = 1e-30

	// errSentinel is the inverse-error weight of a perfect local record.
	errSentinel = 1e30

	// perfectFitTolerance is the objective value at or below which the
	// multi-gate fitter skips optimization.
	perfectFitTolerance = 1e-20
)

// Case is one labeled gating record.
//
// Gates holds the G gate variables, Contenders the M contender predictions
// made for this case, Target the true value.
type Case struct {
	Gates      []float64
	Contenders []float64
	Target     float64
}

// Method names the procedure that produced a combiner's bandwidths.
type Method int

const (
	// MethodPowell is Powell's direction-set search (multi-gate default).
	MethodPowell Method = iota

	// MethodNelderMead is the Nelder–Mead simplex search (multi-gate alternative).
	MethodNelderMead

	// MethodBrent is the grid scan plus Brent refinement used for a single gate.
	MethodBrent

	// MethodFixed means bandwidths were supplied by the caller; no fitting ran.
	MethodFixed
)

// String returns a lowercase method name.
func (m Method) String() string {
	switch m {
	case MethodPowell:
		return "powell"
	case MethodNelderMead:
		return "neldermead"
	case MethodBrent:
		return "brent"
	case MethodFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// FitReport describes how the bandwidths of a Combiner were obtained.
//
// Fields:
//   - Method      - procedure used (Brent for one gate, Powell/NelderMead otherwise, Fixed for caller bandwidths).
//   - Params      - winning log-bandwidth parameters (before clamping).
//   - Bandwidths  - the stored bandwidths, exp(clamp(Params)).
//   - Objective   - leave-near-out MSE plus boundary penalty at Params.
//   - Evaluations - objective calls, including the final one that stores the bandwidths.
//   - Iterations  - optimizer iterations (0 when skipped or fixed).
//   - Converged   - the optimizer met its tolerance before its iteration cap.
//   - Skipped     - multi-gate fit skipped because the start was already a perfect fit.
type FitReport struct {
	Method      Method
	Params      []float64
	Bandwidths  []float64
	Objective   float64
	Evaluations int
	Iterations  int
	Converged   bool
	Skipped     bool
}

// clone returns a deep copy of r.
func (r FitReport) clone() FitReport {
	r.Params = append([]float64(nil), r.Params...)
	r.Bandwidths = append([]float64(nil), r.Bandwidths...)

	return r
}

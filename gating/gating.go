// SPDX-License-Identifier: MIT

package gating

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Combiner blends contender predictions with weights fitted to the local
// accuracy of each contender in gate space.
//
// A Combiner is immutable after New returns; all methods are safe for
// concurrent use.
type Combiner struct {
	ts        *TrainingSet
	bandwidth []float64
	opts      Options
	report    FitReport
}

// New copies the training arrays, fits one bandwidth per gate and returns
// the ready Combiner.
//
// Inputs (case-major flat arrays):
//   - gates:      caseCount·gateCount values.
//   - contenders: caseCount·contenderCount values (training-time predictions).
//   - target:     caseCount true values.
//
// Implementation:
//   - Stage 1: build the TrainingSet (deep copy, validation).
//   - Stage 2: fit bandwidths (or install WithBandwidths) and fill the FitReport.
//
// Errors:
//   - ErrInvalidArgument (bad counts, lengths, non-finite values, or a
//     WithBandwidths slice whose length differs from gateCount).
//
// Complexity: fitting costs O(E·N²·(G+M)) where E is the number of objective
// evaluations (a few dozen with the defaults).
func New(gateCount, contenderCount, caseCount int, gates, contenders, target []float64, opts ...Option) (*Combiner, error) {
	o := gatherOptions(opts...)

	ts, err := NewTrainingSet(gateCount, contenderCount, caseCount, gates, contenders, target)
	if err != nil {
		return nil, err
	}
	if o.bandwidths != nil && len(o.bandwidths) != gateCount {
		return nil, fmt.Errorf("%w: %d bandwidths for %d gates", ErrInvalidArgument, len(o.bandwidths), gateCount)
	}

	c := &Combiner{ts: ts, bandwidth: make([]float64, gateCount), opts: o}
	if err = c.fit(); err != nil {
		return nil, err
	}

	return c, nil
}

// Predict blends queryContenders for a case at queryGates using every
// training case. It is exactly Evaluate(queryGates, queryContenders, -1, 0).
func (c *Combiner) Predict(queryGates, queryContenders []float64) (float64, error) {
	return c.Evaluate(queryGates, queryContenders, -1, 0)
}

// Evaluate blends queryContenders with weights computed from every training
// case whose circular index distance to excludeIndex exceeds excludeRadius.
// A negative excludeIndex disables exclusion.
//
// When every case is excluded, or all kernel weights underflow, each
// contender's weight falls back to the same value and the result is the mean
// of queryContenders.
//
// Errors:
//   - ErrDimensionMismatch for query slices of the wrong length.
//   - ErrExcludeIndex for excludeIndex ≥ Len().
//   - ErrExcludeRadius for excludeRadius < 0.
//
// Complexity: O(N·(G+M)) time, O(M) scratch.
func (c *Combiner) Evaluate(queryGates, queryContenders []float64, excludeIndex, excludeRadius int) (float64, error) {
	if len(queryContenders) != c.ts.m {
		return 0, fmt.Errorf("gating: %d query contenders, want %d: %w", len(queryContenders), c.ts.m, ErrDimensionMismatch)
	}
	w, err := c.Weights(queryGates, excludeIndex, excludeRadius)
	if err != nil {
		return 0, err
	}

	return floats.Dot(w, queryContenders), nil
}

// Weights returns the normalized contender weights Evaluate would apply to
// a query at queryGates. The slice is freshly allocated.
func (c *Combiner) Weights(queryGates []float64, excludeIndex, excludeRadius int) ([]float64, error) {
	if len(queryGates) != c.ts.g {
		return nil, fmt.Errorf("gating: %d query gates, want %d: %w", len(queryGates), c.ts.g, ErrDimensionMismatch)
	}
	if excludeIndex >= c.ts.Len() {
		return nil, fmt.Errorf("gating: exclude index %d with %d cases: %w", excludeIndex, c.ts.Len(), ErrExcludeIndex)
	}
	if excludeRadius < 0 {
		return nil, fmt.Errorf("gating: exclude radius %d: %w", excludeRadius, ErrExcludeRadius)
	}

	w := make([]float64, c.ts.m)
	c.ts.weigh(queryGates, c.bandwidth, excludeIndex, excludeRadius, w)

	return w, nil
}

// CrossValidationError returns the mean squared error of predicting every
// training case from the others, leaving out the cases within radius of it,
// at the stored bandwidths.
func (c *Combiner) CrossValidationError(radius int) (float64, error) {
	if radius < 0 {
		return 0, fmt.Errorf("gating: cross-validation radius %d: %w", radius, ErrExcludeRadius)
	}

	return c.ts.crossValidate(c.bandwidth, radius), nil
}

// Bandwidths returns a copy of the fitted bandwidths (one per gate, all > 0).
func (c *Combiner) Bandwidths() []float64 {
	return append([]float64(nil), c.bandwidth...)
}

// FitReport returns a copy of the fit diagnostics.
func (c *Combiner) FitReport() FitReport {
	return c.report.clone()
}

// TrainingSet returns the combiner's immutable training set.
func (c *Combiner) TrainingSet() *TrainingSet {
	return c.ts
}

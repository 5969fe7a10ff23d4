// SPDX-License-Identifier: MIT

package gating

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/kgate/matrix"
)

// TrainingSet is an immutable, contiguously stored sequence of cases.
// Row i of the backing table is (gates..., contenders..., target).
type TrainingSet struct {
	g, m  int
	store *matrix.Dense
	cases []Case // views into store rows
}

// NewTrainingSet deep-copies parallel flat arrays into a TrainingSet.
//
// Inputs:
//   - gates:      caseCount·gateCount values, case-major.
//   - contenders: caseCount·contenderCount values, case-major.
//   - target:     caseCount values.
//
// Errors:
//   - ErrInvalidArgument when a count is ≤ 0 (also matching
//     matrix.ErrInvalidDimensions), an array is nil or its length does not
//     match its count, or a value is NaN/±Inf (also matching matrix.ErrNaNInf,
//     with the array name and index in the message).
//
// Complexity: O(N·(G+M)) time and memory.
func NewTrainingSet(gateCount, contenderCount, caseCount int, gates, contenders, target []float64) (*TrainingSet, error) {
	if gateCount <= 0 || contenderCount <= 0 || caseCount <= 0 {
		return nil, fmt.Errorf("%w: counts G=%d M=%d N=%d must be > 0: %w",
			ErrInvalidArgument, gateCount, contenderCount, caseCount, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateVecLen(gates, caseCount*gateCount); err != nil {
		return nil, fmt.Errorf("%w: gates has %d values, want %d: %w", ErrInvalidArgument, len(gates), caseCount*gateCount, err)
	}
	if err := matrix.ValidateVecLen(contenders, caseCount*contenderCount); err != nil {
		return nil, fmt.Errorf("%w: contenders has %d values, want %d: %w", ErrInvalidArgument, len(contenders), caseCount*contenderCount, err)
	}
	if err := matrix.ValidateVecLen(target, caseCount); err != nil {
		return nil, fmt.Errorf("%w: target has %d values, want %d: %w", ErrInvalidArgument, len(target), caseCount, err)
	}
	for _, in := range []struct {
		name string
		x    []float64
	}{{"gates", gates}, {"contenders", contenders}, {"target", target}} {
		if err := matrix.ValidateFinite(in.x); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, in.name, err)
		}
	}

	var (
		width  = gateCount + contenderCount + 1
		packed = make([]float64, caseCount*width)
		row    []float64
		i      int
	)
	for i = 0; i < caseCount; i++ {
		row = packed[i*width : (i+1)*width]
		copy(row, gates[i*gateCount:(i+1)*gateCount])
		copy(row[gateCount:], contenders[i*contenderCount:(i+1)*contenderCount])
		row[width-1] = target[i]
	}
	store, err := matrix.NewDenseFrom(caseCount, width, packed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	ts := &TrainingSet{g: gateCount, m: contenderCount, store: store, cases: make([]Case, caseCount)}
	for i = 0; i < caseCount; i++ {
		row, _ = store.Row(i) // i < caseCount by construction
		ts.cases[i] = Case{
			Gates:      row[:gateCount:gateCount],
			Contenders: row[gateCount : gateCount+contenderCount : gateCount+contenderCount],
			Target:     row[width-1],
		}
	}

	return ts, nil
}

// Len returns N, the number of cases.
func (ts *TrainingSet) Len() int { return ts.store.Rows() }

// GateCount returns G.
func (ts *TrainingSet) GateCount() int { return ts.g }

// ContenderCount returns M.
func (ts *TrainingSet) ContenderCount() int { return ts.m }

// Case returns a copy of case i.
//
// Errors: ErrCaseIndex (also matching matrix.ErrOutOfRange) when i is not in [0, N).
func (ts *TrainingSet) Case(i int) (Case, error) {
	row, err := ts.store.Row(i)
	if err != nil {
		return Case{}, fmt.Errorf("gating: Case(%d) of %d: %w: %w", i, ts.Len(), ErrCaseIndex, err)
	}

	return Case{
		Gates:      append([]float64(nil), row[:ts.g]...),
		Contenders: append([]float64(nil), row[ts.g:ts.g+ts.m]...),
		Target:     row[ts.g+ts.m],
	}, nil
}

// String dumps the table for diagnostics, one case per line as
// [gates..., contenders..., target].
//
// Complexity: O(N·(G+M)).
func (ts *TrainingSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TrainingSet N=%d G=%d M=%d\n", ts.Len(), ts.g, ts.m)
	b.WriteString(ts.store.String())

	return b.String()
}

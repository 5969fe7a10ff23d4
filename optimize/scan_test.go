package optimize_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/kgate/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGlobalScan_InteriorMinimum checks that an interior grid minimum is
// bracketed by its two neighbours.
func TestGlobalScan_InteriorMinimum(t *testing.T) {
	f := func(x float64) float64 { return (x - 0.5) * (x - 0.5) }

	br, err := optimize.GlobalScan(f, -3, 3, optimize.DefaultScanOptions())
	require.NoError(t, err)
	assert.LessOrEqual(t, br.A, 0.5, "left end must not pass the minimum")
	assert.GreaterOrEqual(t, br.C, 0.5, "right end must not precede the minimum")
	assert.LessOrEqual(t, br.FB, br.FA)
	assert.LessOrEqual(t, br.FB, br.FC)
	assert.Equal(t, 15, br.Evaluations, "interior minimum needs only the grid")
}

// TestGlobalScan_RightEdgeExtends checks the outward walk past the right edge
// until f turns upward.
func TestGlobalScan_RightEdgeExtends(t *testing.T) {
	f := func(x float64) float64 { return (x - 4) * (x - 4) }

	br, err := optimize.GlobalScan(f, -3, 3, optimize.DefaultScanOptions())
	require.NoError(t, err)
	assert.Less(t, br.A, 4.0)
	assert.Greater(t, br.C, 4.0)
	assert.Greater(t, br.B, 3.0, "best point must lie beyond the original edge")
	assert.Equal(t, 18, br.Evaluations, "15 grid points plus 3 extensions")
}

// TestGlobalScan_LeftEdgeExtends mirrors the right-edge case.
func TestGlobalScan_LeftEdgeExtends(t *testing.T) {
	f := func(x float64) float64 { return (x + 4) * (x + 4) }

	br, err := optimize.GlobalScan(f, -3, 3, optimize.DefaultScanOptions())
	require.NoError(t, err)
	lo, hi := math.Min(br.A, br.C), math.Max(br.A, br.C)
	assert.Less(t, lo, -4.0)
	assert.Greater(t, hi, -4.0)
	assert.Less(t, br.B, -3.0)
}

// TestGlobalScan_MonotoneGivesDegenerateBracket checks that a function that
// keeps decreasing exhausts MaxExtensions and reports B == C.
func TestGlobalScan_MonotoneGivesDegenerateBracket(t *testing.T) {
	f := func(x float64) float64 { return -x }
	opts := optimize.DefaultScanOptions()

	br, err := optimize.GlobalScan(f, -3, 3, opts)
	require.NoError(t, err)
	assert.Equal(t, br.B, br.C, "unresolved edge must be degenerate")
	assert.InDelta(t, 3+20*6.0/14.0, br.B, 1e-9)
	assert.Equal(t, 15+opts.MaxExtensions, br.Evaluations)
}

// TestGlobalScan_CriterionLimit checks the early return on a good-enough value.
func TestGlobalScan_CriterionLimit(t *testing.T) {
	f := math.Abs
	opts := optimize.DefaultScanOptions()
	opts.CriterionLimit = 0.5

	br, err := optimize.GlobalScan(f, -3, 3, opts)
	require.NoError(t, err)
	assert.Equal(t, br.A, br.C)
	assert.Equal(t, br.A, br.B)
	assert.LessOrEqual(t, br.FB, 0.5)
	assert.Equal(t, 7, br.Evaluations, "the seventh grid point is the first within the limit")
}

// TestGlobalScan_Errors covers malformed input.
func TestGlobalScan_Errors(t *testing.T) {
	f := func(x float64) float64 { return x * x }
	opts := optimize.DefaultScanOptions()

	_, err := optimize.GlobalScan(nil, -1, 1, opts)
	assert.ErrorIs(t, err, optimize.ErrNilFunc)

	_, err = optimize.GlobalScan(f, 1, 1, opts)
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "low == high")

	_, err = optimize.GlobalScan(f, math.NaN(), 1, opts)
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "NaN bound")

	_, err = optimize.GlobalScan(f, -1, math.Inf(1), opts)
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "infinite bound")

	few := opts
	few.Points = 2
	_, err = optimize.GlobalScan(f, -1, 1, few)
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "fewer than 3 points")

	negExt := opts
	negExt.MaxExtensions = -1
	_, err = optimize.GlobalScan(f, -1, 1, negExt)
	assert.ErrorIs(t, err, optimize.ErrBadSettings)
}

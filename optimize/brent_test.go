package optimize_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/kgate/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftedParabola(x float64) float64 { return (x-0.5)*(x-0.5) + 1 }

// TestBrent_RefinesScanBracket runs the scan-then-refine pipeline.
func TestBrent_RefinesScanBracket(t *testing.T) {
	br, err := optimize.GlobalScan(shiftedParabola, -3, 3, optimize.DefaultScanOptions())
	require.NoError(t, err)

	s := optimize.DefaultSettings()
	res, err := optimize.Brent(shiftedParabola, br, s)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.5, res.X, 1e-4)
	assert.InDelta(t, 1.0, res.F, 1e-8)
	assert.LessOrEqual(t, res.F, br.FB, "refinement never worsens the bracket centre")
}

// TestBrent_NonSmooth checks golden-section fallback on |x − 1|.
func TestBrent_NonSmooth(t *testing.T) {
	f := func(x float64) float64 { return math.Abs(x - 1) }
	br := optimize.Bracket{A: -2, B: 0, C: 4, FA: f(-2), FB: f(0), FC: f(4)}

	res, err := optimize.Brent(f, br, optimize.DefaultSettings())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X, 1e-4)
}

// TestBrent_DegenerateBracket returns the centre without evaluating f.
func TestBrent_DegenerateBracket(t *testing.T) {
	calls := 0
	f := func(x float64) float64 { calls++; return x * x }
	br := optimize.Bracket{A: 2, B: 2, C: 2, FA: 4, FB: 4, FC: 4}

	res, err := optimize.Brent(f, br, optimize.DefaultSettings())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 2.0, res.X)
	assert.Equal(t, 4.0, res.F)
	assert.Zero(t, calls)
	assert.Zero(t, res.Evaluations)
}

// TestBrent_IterationCap reports non-convergence without an error.
func TestBrent_IterationCap(t *testing.T) {
	br := optimize.Bracket{A: -3, B: 0.4, C: 3, FA: shiftedParabola(-3), FB: shiftedParabola(0.4), FC: shiftedParabola(3)}
	s := optimize.DefaultSettings()
	s.MaxIterations = 1
	s.Tolerance = 1e-12

	res, err := optimize.Brent(shiftedParabola, br, s)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, res.Evaluations)
}

// TestBrent_CriterionLimit stops once f is low enough.
func TestBrent_CriterionLimit(t *testing.T) {
	br := optimize.Bracket{A: -3, B: 0, C: 3, FA: shiftedParabola(-3), FB: shiftedParabola(0), FC: shiftedParabola(3)}
	s := optimize.DefaultSettings()
	s.CriterionLimit = 1.01

	res, err := optimize.Brent(shiftedParabola, br, s)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.F, 1.01)
}

// TestBrent_Errors covers malformed input.
func TestBrent_Errors(t *testing.T) {
	good := optimize.Bracket{A: -1, B: 0, C: 1}

	_, err := optimize.Brent(nil, good, optimize.DefaultSettings())
	assert.ErrorIs(t, err, optimize.ErrNilFunc)

	_, err = optimize.Brent(shiftedParabola, optimize.Bracket{A: -1, B: 5, C: 1}, optimize.DefaultSettings())
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "centre outside the bracket")

	_, err = optimize.Brent(shiftedParabola, optimize.Bracket{A: math.NaN(), B: 0, C: 1}, optimize.DefaultSettings())
	assert.ErrorIs(t, err, optimize.ErrBadDomain, "NaN end")

	bad := optimize.DefaultSettings()
	bad.MaxIterations = 0
	_, err = optimize.Brent(shiftedParabola, good, bad)
	assert.ErrorIs(t, err, optimize.ErrBadSettings)

	bad = optimize.DefaultSettings()
	bad.Tolerance = -1
	_, err = optimize.Brent(shiftedParabola, good, bad)
	assert.ErrorIs(t, err, optimize.ErrBadSettings)
}

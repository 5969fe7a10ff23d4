// Package matrix_test contains unit tests for the Dense table.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/kgate/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDenseFromCopies verifies that NewDenseFrom deep-copies its input.
func TestNewDenseFromCopies(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.NewDenseFrom(2, 3, src)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())

	src[0] = 100 // caller mutation after construction

	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, row)
}

// TestNewDenseFromErrors covers the shape, length and finiteness guards.
func TestNewDenseFromErrors(t *testing.T) {
	_, err := matrix.NewDenseFrom(0, 1, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom(2, 0, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, math.Inf(1), 4})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	assert.Contains(t, err.Error(), "(1,0)", "error names the offending cell")
}

// TestRowView checks that Row returns a bounded, no-copy view.
func TestRowView(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row)
	assert.Equal(t, 2, cap(row), "capacity is clipped so appends cannot spill into the next row")

	again, err := m.Row(1)
	require.NoError(t, err)
	row[0] = 9
	assert.Equal(t, 9.0, again[0], "views share the matrix storage")

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Row(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

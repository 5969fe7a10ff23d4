// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: Row returns an error instead of panicking.
//   - Enforce a numeric policy (rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDenseFrom: O(r*c) copy; Rows/Row: O(1); String: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxRow  = "Row"  // method tag used in error wrappers
	ctxFrom = "From" // ctor tag for NewDenseFrom
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps a sentinel with a uniform Dense context and callsite indices.
//
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix holding finite values only.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (> 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDenseFrom creates an r×c matrix holding a deep copy of data (row-major).
// The caller keeps ownership of data; later writes to it are not observed.
//
// Implementation:
//   - Stage 1: validate shape and len(data) == rows*cols.
//   - Stage 2: reject NaN/Inf with the coordinates of the first offender.
//   - Stage 3: copy into a fresh buffer.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf (wrapped with coordinates).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("Dense.%s: got %d values for %dx%d: %w", ctxFrom, len(data), rows, cols, ErrDimensionMismatch)
	}
	if idx := firstNonFinite(data); idx >= 0 {
		return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNaNInf)
	}

	cp := make([]float64, len(data))
	copy(cp, data)

	return &Dense{r: rows, c: cols, data: cp}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Row returns a no-copy view of row i (length cols, capacity clipped to the row).
// Writes through the view reach the matrix and bypass the NaN/Inf guard, so
// callers that hand rows out treat them as read-only.
//
// Errors: ErrOutOfRange (wrapped).
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * m.c

	return m.data[base : base+m.c : base+m.c], nil
}

// String is a human-readable dump of rows for diagnostics; not for hot paths.
//
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

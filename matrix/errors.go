// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with %w context);
// tests and callers match them via errors.Is. Nothing here panics on
// user-triggered conditions.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	// Callers that size a table from counts wrap it for bad counts as well.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Row returns this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates that a supplied buffer or vector length
	// does not match the shape it is meant to fill.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Dense or nil vector was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)

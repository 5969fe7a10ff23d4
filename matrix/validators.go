// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for vector length and finiteness checks.
//  - Return sentinel errors wrapped with a validator tag so callers can match
//    them with errors.Is and still read where they came from.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateVecLen ensures x is non-nil and has exactly n elements.
//
// Errors: ErrNilMatrix for nil, ErrDimensionMismatch for a wrong length.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite ensures every element of x is finite.
//
// Errors: ErrNaNInf naming the first offending index.
// Complexity: O(len(x)).
func ValidateFinite(x []float64) error {
	if idx := firstNonFinite(x); idx >= 0 {
		return validatorErrorf(fmt.Sprintf("ValidateFinite[%d]", idx), ErrNaNInf)
	}

	return nil
}

// firstNonFinite returns the index of the first NaN/±Inf in x, or -1.
func firstNonFinite(x []float64) int {
	for i, v := range x {
		if isNonFinite(v) {
			return i
		}
	}

	return -1
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

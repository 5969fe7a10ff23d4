// SPDX-License-Identifier: MIT

// Package matrix provides the row-major dense table that backs kgate's
// training sets, plus the finite-value validators used at ingestion.
//
// What & Why:
//
//	Gating training data is a table of N cases, each row holding the gate
//	values, the contender predictions and the target. Dense keeps every row
//	contiguous in one flat buffer (offset = i*cols + j) so the kernel pass
//	walks memory linearly, while Row hands out per-row views that callers
//	slice into structured records without copying.
//
// Numeric policy:
//
//	Dense rejects NaN and ±Inf in NewDenseFrom, and ValidateFinite names the
//	first offender of a plain vector. The gating code relies on this: a
//	single non-finite training value would poison every kernel-weighted
//	error sum it touches.
//
// Complexity:
//
//	NewDenseFrom: O(r*c); Rows/Row: O(1); String: O(r*c).
package matrix

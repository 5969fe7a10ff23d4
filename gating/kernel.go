// SPDX-License-Identifier: MIT

package gating

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// weigh fills w (len M) with normalized contender weights for a query at
// queryGates under bandwidth bw.
//
// Implementation:
//
//	Stage 1: for every case outside the exclusion window, K = exp(−Σ((q−x)/bw)²)
//	         and w[m] += K·(contender[m] − target)².
//	Stage 2: invert: w[m] = 1/w[m] above errFloor, errSentinel otherwise.
//	Stage 3: normalize so Σ w = 1. A non-finite or zero total gives 1/M each.
//
// excludeIndex < 0 disables exclusion. Arguments are trusted; callers validate.
//
// Complexity: O(N·(G+M)) time, no allocation.
func (ts *TrainingSet) weigh(queryGates, bw []float64, excludeIndex, excludeRadius int, w []float64) {
	var (
		n          = len(ts.cases)
		dist, k, d float64
		g, m       int
	)
	for m = range w {
		w[m] = 0
	}

	// Stage 1: kernel-weighted historical squared error.
	for i := range ts.cases {
		if excludeIndex >= 0 && circularDistance(i, excludeIndex, n) <= excludeRadius {
			continue
		}
		c := &ts.cases[i]
		dist = 0
		for g = range queryGates {
			d = (queryGates[g] - c.Gates[g]) / bw[g]
			dist += d * d
		}
		k = math.Exp(-dist)
		if k == 0 {
			continue
		}
		for m = range w {
			d = c.Contenders[m] - c.Target
			w[m] += k * d * d
		}
	}

	// Stage 2: inverse local error, sentinel for a perfect record.
	for m = range w {
		if w[m] > errFloor {
			w[m] = 1 / w[m]
		} else {
			w[m] = errSentinel
		}
	}

	// Stage 3: normalize.
	sum := floats.Sum(w)
	if !(sum > 0) || math.IsInf(sum, 1) {
		for m = range w {
			w[m] = 1 / float64(len(w))
		}
		return
	}
	for m = range w {
		w[m] /= sum
	}
}

// crossValidate returns the leave-near-out mean squared error of the blended
// prediction at bandwidth bw: every case is predicted from its own training
// contenders with the cases within radius of it excluded.
//
// Complexity: O(N²·(G+M)) time, O(M) scratch.
func (ts *TrainingSet) crossValidate(bw []float64, radius int) float64 {
	var (
		w   = make([]float64, ts.m)
		sse float64
		e   float64
	)
	for i := range ts.cases {
		c := &ts.cases[i]
		ts.weigh(c.Gates, bw, i, radius, w)
		e = floats.Dot(w, c.Contenders) - c.Target
		sse += e * e
	}

	return sse / float64(len(ts.cases))
}

// circularDistance is min(|i−j|, n−|i−j|).
func circularDistance(i, j, n int) int {
	d := i - j
	if d < 0 {
		d = -d
	}
	if n-d < d {
		return n - d
	}

	return d
}

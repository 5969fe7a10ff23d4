// SPDX-License-Identifier: MIT

package gating

import "math"

// objective is the bandwidth fitness of one training set: leave-near-out
// MSE plus a linear penalty on log-bandwidths outside [−limit, limit].
// Each fit owns its own objective; nothing is shared between combiners.
type objective struct {
	ts      *TrainingSet
	limit   float64
	penalty float64
	radius  int
	evals   int
}

// eval maps params to bandwidths, writes them into bw and returns the
// fitness. NaN parameters score +Inf.
//
// Complexity: O(N²·(G+M)).
func (o *objective) eval(params, bw []float64) float64 {
	o.evals++

	var pen float64
	for g, p := range params {
		switch {
		case math.IsNaN(p):
			return math.Inf(1)
		case p > o.limit:
			pen += o.penalty * (p - o.limit)
			p = o.limit
		case p < -o.limit:
			pen += o.penalty * (-p - o.limit)
			p = -o.limit
		}
		bw[g] = math.Exp(p)
	}

	return o.ts.crossValidate(bw, o.radius) + pen
}

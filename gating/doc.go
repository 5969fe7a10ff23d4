// SPDX-License-Identifier: MIT

// Package gating implements a kernel-weighted gating combiner: several
// contender models each predict the same scalar, a few continuous gate
// variables describe the case, and the combiner blends the contenders with
// weights that favour the ones that were accurate near the query in gate space.
//
// 🚀 How a prediction is made
//
//	For every training case i (optionally skipping a circular window of
//	cases around an excluded index):
//	    K_i      = exp(−Σ_g ((q_g − x_ig) / h_g)²)
//	    err_m   += K_i · (contender_im − target_i)²
//	w_m = 1/err_m  (or 1e30 when err_m ≤ 1e-30), normalized to Σ w = 1
//	prediction = Σ_m w_m · queryContender_m
//
// The training-time contender values only estimate reliability; the values
// blended are the ones supplied with the query.
//
// ⚙️ How bandwidths are fitted
//
// Bandwidths h_g = exp(clamp(p_g, −L, L)) are fitted in log space by
// minimizing the leave-one-out (or leave-near-out) mean squared error plus a
// penalty P·(|p_g| − L) outside the clamp. One gate uses a grid scan plus
// Brent; several gates use Powell (or Nelder–Mead via WithMethod). The
// optimizer's iteration cap is not an error: the best point is kept and
// FitReport.Converged is false.
//
// ✨ Usage
//
//	c, err := gating.New(1, 2, 4,
//	    []float64{0, 1, 2, 3},             // gates
//	    []float64{0, 5, 1, 6, 2, 7, 3, 8}, // contenders
//	    []float64{0, 1, 2, 3})             // target
//	if err != nil { ... }
//	y, err := c.Predict([]float64{1.5}, []float64{10, 20}) // ≈ 10
//
// Concurrency: a Combiner is read-only after New, and scratch space is per
// call, so Predict/Evaluate may run from many goroutines at once. Independent
// combiners can be fitted concurrently; there is no package-level state.
package gating

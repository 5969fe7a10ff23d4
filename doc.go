// SPDX-License-Identifier: MIT

// Package kgate combines the predictions of several competing models with a
// kernel-weighted gating combiner: each contender is weighted, case by case,
// by the inverse of its kernel-smoothed squared error among training cases
// whose gate variables resemble the query.
//
// 🚀 What is kgate?
//
//	A small, dependency-light library and CLI that brings together:
//		• Gating: training sets, kernel weights, bandwidth fitting, prediction
//		• Optimization: grid scan + Brent (1-D), Powell and Nelder–Mead (N-D)
//		• Matrix: validated dense storage behind the training set
//		• Experiment: Monte-Carlo comparison of gate strategies
//
// ✨ Highlights
//
//   - Bandwidths fitted by leave-one-out cross-validation, with an optional
//     circular exclusion window for serially correlated data
//   - Immutable combiners, safe for concurrent Predict calls
//   - Structured logging via log/slog; silent unless a logger is supplied
//
// Under the hood:
//
//	matrix/       Dense row-major storage & validators
//	optimize/     GlobalScan, Brent, Powell, NelderMead
//	gating/       TrainingSet, Combiner, FitReport
//	experiment/   synthetic data, contender models, gate strategies, Runner
//	cmd/kgate/    command-line driver (run, config)
//
// Quick start:
//
//	c, err := gating.New(1, 2, n, gates, contenders, target)
//	y, err := c.Predict([]float64{g}, []float64{p1, p2})
//
// See each subpackage for details.
package kgate

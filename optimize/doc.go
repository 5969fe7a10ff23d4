// SPDX-License-Identifier: MIT

// Package optimize provides the derivative-free minimizers that kgate uses
// to fit kernel bandwidths.
//
// 🚀 What is inside?
//
//	GlobalScan  - coarse grid search over an interval that brackets a minimum,
//	              walking outward when the best grid point sits on an edge.
//	Brent       - Brent's 1-D minimization (golden section + parabolic steps)
//	              inside a bracket produced by GlobalScan.
//	Powell      - Powell's direction-set method for N-D functions; each line
//	              minimization is an expanding bracket followed by Brent.
//	NelderMead  - adapter over gonum's Nelder–Mead simplex, for callers who
//	              prefer a simplex search to a direction set.
//
// ✨ Contract shared by every minimizer:
//   - Inputs are a plain func value (Func1D or FuncND); closures carry state,
//     so there is no package-level "current problem".
//   - Errors are returned only for malformed input (ErrBadDomain,
//     ErrEmptyStart, ErrBadSettings). Running out of iterations is NOT an
//     error: the best point found is returned with Converged == false.
//   - Settings.CriterionLimit stops a search as soon as f ≤ limit.
//
// ⚙️ Usage:
//
//	br, err := optimize.GlobalScan(f, -3, 3, optimize.DefaultScanOptions())
//	if err != nil { ... }
//	res, err := optimize.Brent(f, br, optimize.DefaultSettings())
//	fmt.Println(res.X, res.F, res.Converged)
//
// Determinism: no randomness anywhere; identical inputs give identical output.
package optimize

// SPDX-License-Identifier: MIT

package optimize

import "math"

// cgold is the golden-section fraction (3 − √5) / 2.
const cgold = 0.3819660112501051

// Brent refines a bracketed 1-D minimum with Brent's method: parabolic
// interpolation through the three best points when it is well-behaved,
// golden-section steps otherwise.
//
// The search interval is [min(br.A, br.C), max(br.A, br.C)] and starts at br.B
// with value br.FB (not re-evaluated). A degenerate bracket (A == C) returns
// br.B immediately.
//
// Termination (Converged == true):
//   - |x − midpoint| ≤ 2·tol1 − (b − a)/2 with tol1 = Tolerance·|x| + Epsilon, or
//   - f(x) ≤ CriterionLimit.
//
// Otherwise the best point after MaxIterations is returned with Converged == false.
//
// Errors: ErrNilFunc, ErrBadSettings, ErrBadDomain (non-finite bracket or B outside [A, C]).
//
// Complexity: one evaluation of f per iteration.
func Brent(f Func1D, br Bracket, s Settings) (Result1D, error) {
	if f == nil {
		return Result1D{}, ErrNilFunc
	}
	if err := s.validate(); err != nil {
		return Result1D{}, err
	}
	if !isFinite(br.A) || !isFinite(br.B) || !isFinite(br.C) {
		return Result1D{}, ErrBadDomain
	}

	var (
		a, b       = math.Min(br.A, br.C), math.Max(br.A, br.C)
		x, w, v    = br.B, br.B, br.B
		fx, fw, fv = br.FB, br.FB, br.FB
		d, e       float64 // last step and the step before it
		u, fu      float64
		xm         float64
		tol1, tol2 float64
		p, q, r    float64
		etemp      float64
		iter       int
		evals      int
	)
	if x < a || x > b {
		return Result1D{}, ErrBadDomain
	}

	for iter = 0; iter < s.MaxIterations; iter++ {
		xm = 0.5 * (a + b)
		tol1 = s.Tolerance*math.Abs(x) + s.Epsilon
		tol2 = 2 * tol1
		if math.Abs(x-xm) <= tol2-0.5*(b-a) || fx <= s.CriterionLimit {
			return Result1D{X: x, F: fx, Iterations: iter, Evaluations: evals, Converged: true}, nil
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// Trial parabolic fit through x, w, v.
			r = (x - w) * (fx - fv)
			q = (x - v) * (fx - fw)
			p = (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			etemp = e
			e = d
			// Accept only if the step is inside (a,b) and smaller than half the
			// step before last.
			if math.Abs(p) < math.Abs(0.5*q*etemp) && p > q*(a-x) && p < q*(b-x) {
				useGolden = false
				d = p / q
				u = x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, xm-x)
				}
			}
		}
		if useGolden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = cgold * e
		}

		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu = f(u)
		evals++

		// Housekeeping: shrink the interval and shuffle x, w, v.
		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, w, x = w, x, u
			fv, fw, fx = fw, fx, fu
			continue
		}
		if u < x {
			a = u
		} else {
			b = u
		}
		if fu <= fw || w == x {
			v, w = w, u
			fv, fw = fw, fu
		} else if fu <= fv || v == x || v == w {
			v, fv = u, fu
		}
	}

	return Result1D{X: x, F: fx, Iterations: iter, Evaluations: evals, Converged: false}, nil
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SPDX-License-Identifier: MIT

package optimize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// golden is the expansion ratio used when bracketing along a line.
	golden = 1.618033988749895

	// maxLineExpansions caps the outward walk of a line bracket.
	maxLineExpansions = 50

	// lineIterations caps each Brent refinement inside Powell.
	lineIterations = 100
)

// Powell minimizes f from x0 with Powell's direction-set method.
//
// Implementation:
//
//	Stage 1: start from the coordinate directions; evaluate f(x0).
//	Stage 2: per major iteration, line-minimize along every direction in turn,
//	         remembering the direction that produced the largest decrease.
//	Stage 3: stop when 2·(fp − f) ≤ Tolerance·(|fp| + |f|) + Epsilon, where fp
//	         is the value at the start of the iteration.
//	Stage 4: otherwise try the extrapolated point 2·x − p; when it passes
//	         Powell's test, line-minimize along x − p and let that direction
//	         replace the one with the largest decrease.
//
// Every line minimization brackets the step t of g(t) = f(x + t·d) by golden
// expansion from t = 0 and t = InitialStep, then refines it with Brent.
// NaN values of f are treated as +Inf.
//
// Errors: ErrNilFunc, ErrEmptyStart, ErrBadSettings. Reaching MaxIterations
// returns the best point with Converged == false.
//
// Complexity: O(MaxIterations · n · line evaluations) calls of f, O(n²) memory.
func Powell(f FuncND, x0 []float64, s Settings) (Result, error) {
	if f == nil {
		return Result{}, ErrNilFunc
	}
	if len(x0) == 0 {
		return Result{}, ErrEmptyStart
	}
	if err := s.validate(); err != nil {
		return Result{}, err
	}

	var (
		n     = len(x0)
		evals int
		iter  int
		i     int
	)
	fn := func(x []float64) float64 {
		evals++
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	// Stage 1: identity direction set.
	dirs := make([][]float64, n)
	for i = 0; i < n; i++ {
		dirs[i] = make([]float64, n)
		dirs[i][i] = 1
	}
	var (
		x     = append([]float64(nil), x0...)
		pt    = append([]float64(nil), x0...)
		ptt   = make([]float64, n)
		xit   = make([]float64, n)
		trial = make([]float64, n)
		fret  = fn(x)
	)
	done := func(converged bool) (Result, error) {
		return Result{X: x, F: fret, Iterations: iter, Evaluations: evals, Converged: converged}, nil
	}
	if fret <= s.CriterionLimit {
		return done(true)
	}

	for iter = 1; iter <= s.MaxIterations; iter++ {
		fp := fret
		ibig, del := 0, 0.0

		// Stage 2: sweep the direction set.
		for i = 0; i < n; i++ {
			copy(xit, dirs[i])
			fprev := fret
			fret = lineMinimize(fn, x, xit, fret, s, trial)
			if fprev-fret > del {
				del = fprev - fret
				ibig = i
			}
			if fret <= s.CriterionLimit {
				return done(true)
			}
		}

		// Stage 3: relative decrease test.
		if 2*(fp-fret) <= s.Tolerance*(math.Abs(fp)+math.Abs(fret))+s.Epsilon {
			return done(true)
		}

		// Stage 4: extrapolate along the average direction of this sweep.
		floats.SubTo(xit, x, pt)
		floats.AddScaledTo(ptt, x, 1, xit)
		copy(pt, x)
		fptt := fn(ptt)
		if fptt >= fp {
			continue
		}
		t := 2*(fp-2*fret+fptt)*sq(fp-fret-del) - del*sq(fp-fptt)
		if t >= 0 {
			continue
		}
		fret = lineMinimize(fn, x, xit, fret, s, trial)
		if fret <= s.CriterionLimit {
			return done(true)
		}
		if floats.Norm(xit, 2) > 0 {
			dirs[ibig] = dirs[n-1]
			dirs[n-1] = append([]float64(nil), xit...)
		}
	}
	iter = s.MaxIterations

	return done(false)
}

// lineMinimize moves x to the minimum of f along dir and returns the new value.
// On return dir holds the actual displacement (zero if no improvement was found).
// trial is scratch of len(x).
func lineMinimize(f FuncND, x, dir []float64, fx float64, s Settings, trial []float64) float64 {
	g := func(t float64) float64 {
		floats.AddScaledTo(trial, x, t, dir)
		return f(trial)
	}
	br := lineBracket(g, fx, s.InitialStep)

	ls := s
	ls.MaxIterations = lineIterations
	res, err := Brent(g, br, ls)
	if err != nil || !(res.F < fx) {
		floats.Scale(0, dir)
		return fx
	}
	floats.AddScaled(x, res.X, dir)
	floats.Scale(res.X, dir)

	return res.F
}

// lineBracket brackets a minimum of g starting from g(0) = f0. The walk goes
// downhill from 0 toward ±step and expands by the golden ratio until g stops
// decreasing or maxLineExpansions is spent.
func lineBracket(g Func1D, f0, step float64) Bracket {
	var (
		a, fa = 0.0, f0
		b     = step
		fb    = g(b)
		c, fc float64
		k     int
	)
	if fb > fa {
		c = -step
		fc = g(c)
		if fc >= fa {
			return Bracket{A: c, B: a, C: b, FA: fc, FB: fa, FC: fb}
		}
		b, fb = c, fc
	}
	for k = 0; k < maxLineExpansions; k++ {
		c = b + golden*(b-a)
		fc = g(c)
		if fc >= fb {
			return Bracket{A: a, B: b, C: c, FA: fa, FB: fb, FC: fc}
		}
		a, fa = b, fb
		b, fb = c, fc
	}

	return Bracket{A: a, B: b, C: b, FA: fa, FB: fb, FC: fb}
}

func sq(v float64) float64 { return v * v }

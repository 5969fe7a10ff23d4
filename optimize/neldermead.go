// SPDX-License-Identifier: MIT

package optimize

import (
	"math"
	"sync"

	gonumopt "gonum.org/v1/gonum/optimize"
)

// stallIterations is how many non-improving major iterations end a simplex run.
const stallIterations = 20

// NelderMead minimizes f from x0 with gonum's Nelder–Mead simplex.
//
// Settings map onto gonum as follows:
//   - MaxIterations  → Settings.MajorIterations
//   - Tolerance      → FunctionConverge.Relative
//   - Epsilon        → FunctionConverge.Absolute
//   - InitialStep    → NelderMead.SimplexSize
//   - CriterionLimit → Problem.Status returning FunctionThreshold
//
// NaN values of f are treated as +Inf. Early termination by gonum (iteration
// cap, failure) is reported as Converged == false, never as an error.
//
// Errors: ErrNilFunc, ErrEmptyStart, ErrBadSettings.
func NelderMead(f FuncND, x0 []float64, s Settings) (Result, error) {
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
		mu    sync.Mutex // gonum evaluates in a worker goroutine
		evals int
		best  = math.Inf(1)
		bestX = append([]float64(nil), x0...)
	)
	problem := gonumopt.Problem{
		Func: func(x []float64) float64 {
			v := f(x)
			if math.IsNaN(v) {
				v = math.Inf(1)
			}
			mu.Lock()
			evals++
			if v < best {
				best = v
				copy(bestX, x)
			}
			mu.Unlock()
			return v
		},
		Status: func() (gonumopt.Status, error) {
			mu.Lock()
			defer mu.Unlock()
			if best <= s.CriterionLimit {
				return gonumopt.FunctionThreshold, nil
			}
			return gonumopt.NotTerminated, nil
		},
	}
	settings := &gonumopt.Settings{
		MajorIterations: s.MaxIterations,
		Converger: &gonumopt.FunctionConverge{
			Absolute:   s.Epsilon,
			Relative:   s.Tolerance,
			Iterations: stallIterations,
		},
	}

	res, err := gonumopt.Minimize(problem, append([]float64(nil), x0...), settings,
		&gonumopt.NelderMead{SimplexSize: s.InitialStep})

	mu.Lock()
	defer mu.Unlock()
	out := Result{X: bestX, F: best, Evaluations: evals}
	if res != nil {
		out.Iterations = res.Stats.MajorIterations
		if res.F <= best && len(res.X) == len(x0) {
			out.X = append([]float64(nil), res.X...)
			out.F = res.F
		}
		out.Converged = err == nil && !res.Status.Early()
	}
	if math.IsInf(out.F, 1) {
		// Nothing finite was ever seen; report the start point.
		out.X = append([]float64(nil), x0...)
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

package gating

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kgate/optimize"
)

// fit chooses the bandwidths of c and fills c.report.
//
// Implementation:
//
//	Fixed:   caller bandwidths are installed as-is and scored once.
//	G == 1:  GlobalScan over [DefaultScanLow, DefaultScanHigh] brackets the
//	         best log-bandwidth, then Brent refines it.
//	G > 1:   start at log-bandwidth 0; skip when that is already a perfect
//	         fit, else run Powell or Nelder–Mead.
//	Finally: the objective runs once more on the winning parameters with
//	         c.bandwidth as destination, which is the only write of it.
//
// Non-convergence is not an error; it is logged and reported.
func (c *Combiner) fit() error {
	var (
		g       = c.ts.GateCount()
		logger  = c.opts.logger
		scratch = make([]float64, g)
		params  []float64
		err     error
	)
	obj := &objective{
		ts:      c.ts,
		limit:   c.opts.logLimit,
		penalty: c.opts.penalty,
		radius:  c.opts.excludeRadius,
	}

	if c.opts.bandwidths != nil {
		copy(c.bandwidth, c.opts.bandwidths)
		params = make([]float64, g)
		for i, bw := range c.bandwidth {
			params[i] = math.Log(bw)
		}
		c.report = FitReport{
			Method:     MethodFixed,
			Params:     params,
			Objective:  c.ts.crossValidate(c.bandwidth, c.opts.excludeRadius),
			Converged:  true,
			Bandwidths: append([]float64(nil), c.bandwidth...),
		}
		logger.Debug("gating: using fixed bandwidths", "bandwidths", c.bandwidth)
		return nil
	}

	logger.Debug("gating: fitting bandwidths",
		"cases", c.ts.Len(), "gates", g, "contenders", c.ts.ContenderCount())

	if g == 1 {
		params, err = c.fitSingle(obj, scratch)
	} else {
		params, err = c.fitMulti(obj, scratch)
	}
	if err != nil {
		return err
	}

	// Final call: store the bandwidths of the winning parameters.
	c.report.Params = params
	c.report.Objective = obj.eval(params, c.bandwidth)
	c.report.Evaluations = obj.evals
	c.report.Bandwidths = append([]float64(nil), c.bandwidth...)

	if !c.report.Converged {
		logger.Warn("gating: bandwidth search stopped at its iteration cap",
			"method", c.report.Method.String(), "iterations", c.report.Iterations,
			"objective", c.report.Objective)
	}
	logger.Debug("gating: bandwidths fitted",
		"method", c.report.Method.String(), "bandwidths", c.report.Bandwidths,
		"objective", c.report.Objective, "evaluations", c.report.Evaluations,
		"skipped", c.report.Skipped)

	return nil
}

// fitSingle is the one-gate path: coarse grid scan then Brent.
func (c *Combiner) fitSingle(obj *objective, scratch []float64) ([]float64, error) {
	p := make([]float64, 1)
	f := func(x float64) float64 {
		p[0] = x
		return obj.eval(p, scratch)
	}

	scan := optimize.DefaultScanOptions()
	scan.Points = DefaultScanPoints
	scan.CriterionLimit = 0
	// Walk far enough past an edge to reach the penalized region.
	step := (DefaultScanHigh - DefaultScanLow) / float64(DefaultScanPoints-1)
	scan.MaxExtensions = int(math.Ceil((c.opts.logLimit-DefaultScanHigh)/step)) + 2
	if scan.MaxExtensions < 1 {
		scan.MaxExtensions = 1
	}

	br, err := optimize.GlobalScan(f, DefaultScanLow, DefaultScanHigh, scan)
	if err != nil {
		return nil, fmt.Errorf("gating: bandwidth scan: %w", err)
	}
	res, err := optimize.Brent(f, br, optimize.Settings{
		MaxIterations:  c.opts.maxIterations,
		Tolerance:      DefaultTolerance1D,
		Epsilon:        DefaultTolerance1D,
		CriterionLimit: 0,
		InitialStep:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("gating: bandwidth refinement: %w", err)
	}

	c.report.Method = MethodBrent
	c.report.Iterations = res.Iterations
	c.report.Converged = res.Converged

	return []float64{res.X}, nil
}

// fitMulti is the several-gate path: start at bandwidth 1 everywhere.
func (c *Combiner) fitMulti(obj *objective, scratch []float64) ([]float64, error) {
	x0 := make([]float64, len(scratch))
	c.report.Method = c.opts.method

	if f0 := obj.eval(x0, scratch); f0 <= perfectFitTolerance {
		c.report.Skipped = true
		c.report.Converged = true
		c.opts.logger.Debug("gating: start is a perfect fit, search skipped", "objective", f0)
		return x0, nil
	}

	f := func(x []float64) float64 { return obj.eval(x, scratch) }
	s := optimize.Settings{
		MaxIterations:  c.opts.maxIterations,
		Tolerance:      DefaultToleranceND,
		Epsilon:        1e-10,
		CriterionLimit: 0,
		InitialStep:    1,
	}

	var (
		res optimize.Result
		err error
	)
	switch c.opts.method {
	case MethodNelderMead:
		res, err = optimize.NelderMead(f, x0, s)
	default:
		res, err = optimize.Powell(f, x0, s)
	}
	if err != nil {
		return nil, fmt.Errorf("gating: bandwidth search: %w", err)
	}

	c.report.Iterations = res.Iterations
	c.report.Converged = res.Converged

	return res.X, nil
}

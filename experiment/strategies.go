// SPDX-License-Identifier: MIT

package experiment

import "math"

// Strategy is a choice of gate variables for the combiner.
type Strategy int

const (
	// StrategyAfterFact uses the contenders' own outputs as gates (G = M).
	StrategyAfterFact Strategy = iota
	// StrategyOriginal uses the raw predictors (x1, x2) as gates (G = 2).
	StrategyOriginal
	// StrategyRandom uses one N(0,1) draw unrelated to the case (G = 1).
	StrategyRandom
	// StrategyRatio uses log(|e1|/|e2|) of the first two contenders' errors
	// (G = 1). It needs the true value at query time, so it is a diagnostic
	// upper bound rather than a usable gate.
	StrategyRatio
)

// ratioGuard keeps the error ratio finite when an error is exactly zero.
const ratioGuard = 1e-60

// String returns the name used in logs and tables.
func (s Strategy) String() string {
	switch s {
	case StrategyAfterFact:
		return "after-the-fact"
	case StrategyOriginal:
		return "original"
	case StrategyRandom:
		return "random"
	case StrategyRatio:
		return "ratio"
	default:
		return "unknown"
	}
}

// Strategies lists the strategies available with m contenders; the ratio
// gate needs two.
func Strategies(m int) []Strategy {
	out := []Strategy{StrategyAfterFact, StrategyOriginal, StrategyRandom}
	if m >= 2 {
		out = append(out, StrategyRatio)
	}
	return out
}

// gateSet holds case-major gate arrays for one strategy.
type gateSet struct {
	strategy Strategy
	g        int
	train    []float64 // len(trainSet)·g
	test     []float64 // len(testSet)·g
}

// predictions holds case-major contender outputs: out[i·m+j] is contender j
// on case i.
type predictions struct {
	m   int
	out []float64
}

func (p predictions) row(i int) []float64 { return p.out[i*p.m : (i+1)*p.m] }

// buildGates computes the gate arrays of every strategy. Random draws are
// taken from gen in a fixed order (training cases, then test cases).
func buildGates(strategies []Strategy, train, test []Sample, trainPred, testPred predictions, gen *generator) []gateSet {
	sets := make([]gateSet, 0, len(strategies))
	for _, s := range strategies {
		gs := gateSet{strategy: s}
		switch s {
		case StrategyAfterFact:
			gs.g = trainPred.m
			gs.train = append([]float64(nil), trainPred.out...)
			gs.test = append([]float64(nil), testPred.out...)
		case StrategyOriginal:
			gs.g = 2
			gs.train = originalGates(train)
			gs.test = originalGates(test)
		case StrategyRandom:
			gs.g = 1
			gs.train = make([]float64, len(train))
			for i := range gs.train {
				gs.train[i] = gen.normal()
			}
			gs.test = make([]float64, len(test))
			for i := range gs.test {
				gs.test[i] = gen.normal()
			}
		case StrategyRatio:
			gs.g = 1
			gs.train = ratioGates(train, trainPred)
			gs.test = ratioGates(test, testPred)
		}
		sets = append(sets, gs)
	}
	return sets
}

func originalGates(xs []Sample) []float64 {
	out := make([]float64, 0, 2*len(xs))
	for _, s := range xs {
		out = append(out, s.X1, s.X2)
	}
	return out
}

// ratioGates is log((|e1|+guard)/(|e2|+guard)) per case.
func ratioGates(xs []Sample, pred predictions) []float64 {
	out := make([]float64, len(xs))
	for i, s := range xs {
		row := pred.row(i)
		e1 := math.Abs(row[0]-s.Y) + ratioGuard
		e2 := math.Abs(row[1]-s.Y) + ratioGuard
		out[i] = math.Log(e1 / e2)
	}
	return out
}

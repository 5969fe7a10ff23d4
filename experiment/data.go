// SPDX-License-Identifier: MIT

package experiment

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is one synthetic case: two predictors and the value to predict.
type Sample struct {
	X1, X2 float64
	Y      float64
}

// generator draws every random number of a run from one seeded stream.
// It is not safe for concurrent use.
type generator struct {
	norm distuv.Normal
}

func newGenerator(seed uint64) *generator {
	return &generator{norm: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}}
}

// normal returns one N(0,1) draw.
func (g *generator) normal() float64 { return g.norm.Rand() }

// samples draws n cases of y = x1 − x2 + std·ε with x1, x2, ε ~ N(0,1).
func (g *generator) samples(n int, std float64) []Sample {
	out := make([]Sample, n)
	for i := range out {
		x1 := g.normal()
		x2 := g.normal()
		out[i] = Sample{X1: x1, X2: x2, Y: x1 - x2 + std*g.normal()}
	}
	return out
}

// noisy returns a copy of xs whose targets are replaced by N(0,1) draws.
func (g *generator) noisy(xs []Sample) []Sample {
	out := make([]Sample, len(xs))
	for i, s := range xs {
		out[i] = Sample{X1: s.X1, X2: s.X2, Y: g.normal()}
	}
	return out
}

// scaled returns a copy of xs with targets multiplied by f.
func scaled(xs []Sample, f float64) []Sample {
	out := make([]Sample, len(xs))
	for i, s := range xs {
		out[i] = Sample{X1: s.X1, X2: s.X2, Y: f * s.Y}
	}
	return out
}

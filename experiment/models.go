// SPDX-License-Identifier: MIT

package experiment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Kind selects a contender model family.
type Kind int

const (
	// KindLinear is least squares on (1, x1, x2).
	KindLinear Kind = iota
	// KindQuadratic is least squares on (1, x1, x2, x1², x2², x1·x2).
	KindQuadratic
	// KindNeighbors averages the targets of the k nearest training cases.
	KindNeighbors
)

// String returns a short name used in reports.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindQuadratic:
		return "quadratic"
	case KindNeighbors:
		return "knn"
	default:
		return "unknown"
	}
}

// ErrMeanFallback reports a least-squares model whose solve failed. The model
// stays usable and predicts the mean of its training targets.
var ErrMeanFallback = errors.New("experiment: least-squares solve failed, predicting the training mean")

// kindFor cycles the contender families by model index.
func kindFor(i int) Kind { return Kind(i % 3) }

// Model is a contender: trained once, then queried for a scalar prediction.
// A Train error matching ErrMeanFallback leaves the model usable.
type Model interface {
	Train(xs []Sample) error
	Predict(x1, x2 float64) float64
	Kind() Kind
}

// NewModel returns an untrained model of the given kind. k is used only by
// KindNeighbors.
func NewModel(kind Kind, k int) Model {
	switch kind {
	case KindQuadratic:
		return &leastSquares{kind: kind, features: quadraticFeatures}
	case KindNeighbors:
		return &neighbors{k: k}
	default:
		return &leastSquares{kind: KindLinear, features: linearFeatures}
	}
}

func linearFeatures(x1, x2 float64) []float64 {
	return []float64{1, x1, x2}
}

func quadraticFeatures(x1, x2 float64) []float64 {
	return []float64{1, x1, x2, x1 * x1, x2 * x2, x1 * x2}
}

// leastSquares fits beta minimizing |A·beta − y|² over a feature map. An
// underdetermined system takes the minimum-norm solution; a rank-deficient
// one keeps what the solver produced. If the solve fails outright the model
// predicts the training mean and Train reports ErrMeanFallback.
type leastSquares struct {
	kind     Kind
	features func(x1, x2 float64) []float64
	beta     []float64
	mean     float64
}

func (m *leastSquares) Kind() Kind { return m.kind }

func (m *leastSquares) Train(xs []Sample) error {
	if len(xs) == 0 {
		return fmt.Errorf("experiment: train %s: no samples", m.kind)
	}
	var (
		p = len(m.features(0, 0))
		a = mat.NewDense(len(xs), p, nil)
		b = mat.NewVecDense(len(xs), nil)
		y = make([]float64, len(xs))
	)
	for i, s := range xs {
		a.SetRow(i, m.features(s.X1, s.X2))
		b.SetVec(i, s.Y)
		y[i] = s.Y
	}
	m.mean = stat.Mean(y, nil)
	m.beta = nil

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("%w: %s: %w", ErrMeanFallback, m.kind, err)
		}
	}
	coef := make([]float64, p)
	for i := range coef {
		coef[i] = beta.AtVec(i)
		if math.IsNaN(coef[i]) || math.IsInf(coef[i], 0) {
			return fmt.Errorf("%w: %s: coefficient %d is %v", ErrMeanFallback, m.kind, i, coef[i])
		}
	}
	m.beta = coef

	return nil
}

func (m *leastSquares) Predict(x1, x2 float64) float64 {
	if m.beta == nil {
		return m.mean
	}
	var out float64
	for i, f := range m.features(x1, x2) {
		out += m.beta[i] * f
	}
	return out
}

// neighbors averages the targets of the k closest training cases
// (Euclidean distance on (x1, x2), ties broken by training order).
type neighbors struct {
	k  int
	xs []Sample
}

func (m *neighbors) Kind() Kind { return KindNeighbors }

func (m *neighbors) Train(xs []Sample) error {
	if len(xs) == 0 {
		return fmt.Errorf("experiment: train %s: no samples", KindNeighbors)
	}
	m.xs = append([]Sample(nil), xs...)
	return nil
}

func (m *neighbors) Predict(x1, x2 float64) float64 {
	type scored struct {
		d2 float64
		y  float64
	}
	all := make([]scored, len(m.xs))
	for i, s := range m.xs {
		d1, d2 := s.X1-x1, s.X2-x2
		all[i] = scored{d2: d1*d1 + d2*d2, y: s.Y}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].d2 < all[j].d2 })

	k := m.k
	if k > len(all) {
		k = len(all)
	}
	var sum float64
	for _, s := range all[:k] {
		sum += s.y
	}
	return sum / float64(k)
}

// SPDX-License-Identifier: MIT

// Package experiment runs Monte-Carlo comparisons of gate strategies for
// the gating combiner on synthetic data.
//
// Each trial draws y = x1 − x2 + σ·ε, trains M contender models (cycling
// linear, quadratic and k-nearest-neighbour fits; model 4 is trained on pure
// noise and model 5 on targets scaled by 1000 when present), then fits one
// combiner per gate strategy on the contenders' training predictions and
// scores it on a test set ten times larger. Strategies of one trial are
// fitted concurrently; every random draw comes from one seeded stream, so a
// run is reproducible from its Config.
package experiment

// Package generator produces random shape parameters.
package generator

import (
	"math/rand/v2"

	"github.com/wesleyorama2/figures/internal/shapes"
)

const (
	// MinValue is the smallest value drawn for any shape parameter.
	MinValue = 1

	// MaxValue is the largest value drawn for any shape parameter.
	MaxValue = 200
)

// Generator draws shape parameters uniformly from [MinValue, MaxValue].
//
// Two generators created with the same seed produce the same sequence.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// New creates a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Value draws a single parameter value.
func (g *Generator) Value() int {
	return MinValue + g.rng.IntN(MaxValue-MinValue+1)
}

// Params draws one parameter tuple for kind.
func (g *Generator) Params(kind shapes.Kind) shapes.Params {
	values := make([]int, kind.Arity())
	for i := range values {
		values[i] = g.Value()
	}
	return shapes.Params{Kind: kind, Values: values}
}

// Batch draws n parameter tuples for kind. It never returns nil.
func (g *Generator) Batch(kind shapes.Kind, n int) []shapes.Params {
	if n < 0 {
		n = 0
	}
	batch := make([]shapes.Params, n)
	for i := range batch {
		batch[i] = g.Params(kind)
	}
	return batch
}

// Workload draws n tuples for every kind, in the order of shapes.Kinds.
func (g *Generator) Workload(n int) map[shapes.Kind][]shapes.Params {
	work := make(map[shapes.Kind][]shapes.Params, len(shapes.Kinds()))
	for _, kind := range shapes.Kinds() {
		work[kind] = g.Batch(kind, n)
	}
	return work
}

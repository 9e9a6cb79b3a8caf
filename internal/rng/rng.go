// Package rng provides the injectable random source for all stochastic
// camp decisions. A fixed seed reproduces incident draws, outcome rolls
// and roster changes exactly, which the statistical tests rely on.
package rng

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Source is the random interface consumed by the simulation subsystems.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// Rand is a seedable math/rand-backed Source.
type Rand struct {
	r *rand.Rand
}

// New creates a seeded source.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (s *Rand) Float() float64 { return s.r.Float64() }
func (s *Rand) Intn(n int) int { return s.r.Intn(n) }

// Uniform draws a uniform int in [min, max] inclusive.
// Returns min when max <= min.
func Uniform(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Chance returns true with probability p (clamped to [0,1]).
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float() < p
}

// WeightedPick selects an index from weights proportionally to their values.
// Zero and negative weights are never picked. Returns -1 when no weight is
// positive.
func WeightedPick(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := src.Float() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	// Floating point remainder lands on the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

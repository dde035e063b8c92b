// Package randutil holds the sampling helpers shared by the geometry and
// tracer packages. A Source is owned by one caller at a time; advancing it
// mutates it, so concurrent callers each need their own.
package randutil

import (
	"math/rand/v2"

	"github.com/san-kum/stokeskit/internal/array"
)

// Source is the uniform random source the samplers draw from.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NormSource adds standard normal draws for Brownian noise.
type NormSource interface {
	Source
	NormFloat64() float64
}

// NewSource returns a PCG-backed source seeded deterministically.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform draws from [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Choice picks one element of vals uniformly. vals must not be empty.
func Choice[T any](src Source, vals []T) T {
	return vals[src.IntN(len(vals))]
}

// FirstGreater returns the first index whose value exceeds x, or len(vals).
func FirstGreater[T array.Number](vals []T, x T) int {
	for i, v := range vals {
		if v > x {
			return i
		}
	}
	return len(vals)
}

// WeightedIndex draws an index with probability proportional to its weight.
// It returns len(weights) when every weight is zero.
func WeightedIndex(src Source, weights []float64) int {
	return WeightedIndexCDF(src, array.Of(weights...).CumSum())
}

// WeightedIndexCDF is WeightedIndex over precomputed running totals.
func WeightedIndexCDF(src Source, cdf []float64) int {
	if len(cdf) == 0 {
		return 0
	}
	total := cdf[len(cdf)-1]
	return FirstGreater(cdf, Uniform(src, 0, total))
}

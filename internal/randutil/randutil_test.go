package randutil

import (
	"math"
	"testing"

	"github.com/san-kum/stokeskit/internal/array"
)

// fixedSource replays a list of uniform draws.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func (f *fixedSource) IntN(n int) int {
	return int(f.Float64() * float64(n))
}

func TestWeightedIndexMatchesCDF(t *testing.T) {
	weights := []float64{1, 2, 3, 5, 7, 11, 13}
	cdf := array.Of(weights...).CumSum()
	if cdf[len(cdf)-1] != 42 {
		t.Fatalf("running total = %v, want 42 last", cdf)
	}

	for _, draw := range []float64{0, 0.01, 0.2, 0.5, 0.73, 0.999} {
		a := WeightedIndex(&fixedSource{vals: []float64{draw}}, weights)
		b := WeightedIndexCDF(&fixedSource{vals: []float64{draw}}, cdf)
		if a != b {
			t.Errorf("draw %g: WeightedIndex = %d, WeightedIndexCDF = %d", draw, a, b)
		}
	}

	if got := WeightedIndex(&fixedSource{vals: []float64{0.5}}, nil); got != 0 {
		t.Errorf("no weights: got %d, want 0", got)
	}
}

func TestFirstGreater(t *testing.T) {
	vals := []float64{1, 3, 6, 11}
	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{1, 1},
		{2.5, 1},
		{6, 3},
		{10.99, 3},
		{11, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := FirstGreater(vals, tt.x); got != tt.want {
			t.Errorf("FirstGreater(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	weights := []float64{1, 0, 3}

	tests := []struct {
		name string
		draw float64
		want int
	}{
		{"first bucket", 0.1, 0},
		{"boundary skips empty bucket", 0.25, 2},
		{"last bucket", 0.9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{vals: []float64{tt.draw}}
			if got := WeightedIndex(src, weights); got != tt.want {
				t.Errorf("WeightedIndex = %d, want %d", got, tt.want)
			}
		})
	}

	if got := WeightedIndex(&fixedSource{vals: []float64{0.5}}, []float64{0, 0}); got != 2 {
		t.Errorf("all-zero weights: got %d, want 2", got)
	}
}

func TestWeightedIndexFrequencies(t *testing.T) {
	src := NewSource(7)
	weights := []float64{2, 5, 3}
	counts := make([]int, len(weights))

	const n = 200000
	for i := 0; i < n; i++ {
		counts[WeightedIndex(src, weights)]++
	}

	for i, w := range weights {
		got := float64(counts[i]) / n
		want := w / 10
		if math.Abs(got-want)/want > 0.02 {
			t.Errorf("bucket %d frequency = %.4f, want %.4f", i, got, want)
		}
	}
}

func TestUniformAndChoice(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := Uniform(src, -2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("Uniform out of range: %v", v)
		}
	}

	vals := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[Choice(src, vals)] = true
	}
	if len(seen) != len(vals) {
		t.Errorf("Choice visited %d of %d values", len(seen), len(vals))
	}
}

func TestNewSourceDeterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different streams")
		}
	}
	var _ NormSource = a
}

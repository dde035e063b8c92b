package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/tracer"
)

func builder(t *testing.T, visited *int) BuildFunc {
	reg := experiment.NewRegistry()
	return func(params map[string]float64) (*experiment.Experiment, error) {
		*visited++
		cfg := config.DefaultConfig()
		cfg.Tracer.Particles = 2
		cfg.Tracer.Dt = 1e-3
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(cfg, reg)
		return exp, exp.Setup()
	}
}

func TestNewGridSearch_Invalid(t *testing.T) {
	cases := []struct {
		params []string
		ranges [][]float64
	}{
		{nil, nil},
		{[]string{"dt"}, nil},
		{[]string{"dt"}, [][]float64{{}}},
	}
	for _, c := range cases {
		if _, err := NewGridSearch(c.params, c.ranges); !errors.Is(err, ErrBadGrid) {
			t.Errorf("NewGridSearch(%v, %v): expected ErrBadGrid, got %v", c.params, c.ranges, err)
		}
	}
}

func TestGridSearch(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"duration", "particles"},
		[][]float64{{0.004, 0.002, 0.003}, {3, 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if g.Points() != 6 {
		t.Errorf("Points() = %d, want 6", g.Points())
	}

	visited := 0
	best, val, err := g.Search(context.Background(), builder(t, &visited), "steps")
	if err != nil {
		t.Fatal(err)
	}

	if visited != 6 {
		t.Errorf("visited %d points, want 6", visited)
	}
	if val != 2 {
		t.Errorf("best steps = %g, want 2", val)
	}
	// Both particle counts give 2 steps; the first visited wins.
	if best["duration"] != 0.002 || best["particles"] != 3 {
		t.Errorf("best = %v", best)
	}
}

func TestGridSearch_Errors(t *testing.T) {
	visited := 0

	g, _ := NewGridSearch([]string{"duration"}, [][]float64{{0.002}})
	if _, _, err := g.Search(context.Background(), builder(t, &visited), "energy"); !errors.Is(err, tracer.ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}

	g, _ = NewGridSearch([]string{"gravity"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), builder(t, &visited), "steps"); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ = NewGridSearch([]string{"duration"}, [][]float64{{0.002}})
	if _, _, err := g.Search(ctx, builder(t, &visited), "steps"); !errors.Is(err, tracer.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

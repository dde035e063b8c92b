package automation

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/tracer"
)

// Ensemble repeats one scenario with independent seeds.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart uint64
}

func NewEnsemble(base *config.Config, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

// Seed is the base seed of run idx. Particles seed from base+i, so runs are
// spaced by the particle count and never share a stream.
func (e *Ensemble) Seed(idx int) uint64 {
	return e.seedStart + uint64(idx)*uint64(e.base.Tracer.Particles)
}

// Run executes the members on up to GOMAXPROCS goroutines and returns
// results in run order. The first failure cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, registry *experiment.Registry) ([]*tracer.Result, error) {
	results := make([]*tracer.Result, e.numRuns)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfg := e.base.Clone()
			cfg.Tracer.Seed = e.Seed(i)

			r, err := runOne(gctx, cfg, registry)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary describes one metric across an ensemble. Std is the sample
// standard deviation, zero for a single run.
type Summary struct {
	Metric string
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

func Summarize(results []*tracer.Result, metric string) (Summary, error) {
	s := Summary{Metric: metric, N: len(results), Min: math.Inf(1), Max: math.Inf(-1)}
	if len(results) == 0 {
		return s, nil
	}

	values := make([]float64, len(results))
	for i, r := range results {
		v, err := r.Stats.Metric(metric)
		if err != nil {
			return s, err
		}
		values[i] = v
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(values))

	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.Std = math.Sqrt(ss / float64(len(values)-1))
	}
	return s, nil
}

package automation

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/tracer"
)

var ErrInvalidSweep = errors.New("automation: invalid sweep")

// ParameterSweep runs Base once per value of Param, spaced evenly from Min
// to Max inclusive.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value float64
	Stats tracer.Stats
}

// Values lists the parameter values the sweep visits.
func (s *ParameterSweep) Values() []float64 {
	if s.Steps == 1 {
		return []float64{s.Min}
	}
	out := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, progress Progress) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("%w: %d steps", ErrInvalidSweep, sweep.Steps)
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.Param, v); err != nil {
			return nil, err
		}

		result, err := runOne(ctx, cfg, registry)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		results = append(results, SweepResult{Value: v, Stats: result.Stats})

		if progress != nil {
			progress(i+1, len(values), fmt.Sprintf("%s=%g", sweep.Param, v))
		}
	}
	return results, nil
}

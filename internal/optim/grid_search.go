// Package optim searches scenario parameters for the run that minimises a
// tracer statistic.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/stokeskit/internal/experiment"
)

var ErrBadGrid = errors.New("optim: invalid grid")

// BuildFunc prepares an experiment for one grid point. The returned
// experiment must already be set up.
type BuildFunc func(params map[string]float64) (*experiment.Experiment, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d names for %d ranges", ErrBadGrid, len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrBadGrid, params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Points is the number of runs a full search makes.
func (g *GridSearch) Points() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs every grid point and returns the one with the smallest
// metric. Ties keep the first point visited.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			return fmt.Errorf("build %v: %w", current, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("run %v: %w", current, err)
		}

		val, err := result.Stats.Metric(metricName)
		if err != nil {
			return err
		}
		if val < *best || *bestParams == nil {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, build, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

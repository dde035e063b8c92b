// Package tracer advects Brownian tracer particles through a flow field
// inside a reflecting box.
//
// Each step applies the Euler-Maruyama update
//
//	x += u(x)*dt + sqrt(2*D*dt)*N(0, 1)
//
// per axis, with D the Stokes-Einstein diffusivity of the tracer, and then
// reflects the position back through any box face it crossed. Particle i
// draws from its own source seeded with Seed+i, so runs are reproducible
// whatever the worker count.
package tracer

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/physconst"
	"github.com/san-kum/stokeskit/internal/randutil"
)

const minChunk = 16

// Diffusivity is the Stokes-Einstein coefficient kB*T/(6*pi*mu*a).
func Diffusivity(temperature, viscosity, radius float64) float64 {
	return physconst.Boltzmann * temperature / (6 * physconst.Pi * viscosity * radius)
}

type Simulator struct {
	field     fluid.Field
	box       bbox.Box
	params    Params
	observers []Observer
}

func New(field fluid.Field, box bbox.Box, params Params) (*Simulator, error) {
	if err := validate(params); err != nil {
		return nil, err
	}
	return &Simulator{field: field, box: box, params: params}, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func validate(p Params) error {
	switch {
	case p.Particles <= 0:
		return fmt.Errorf("%w: particles %d", ErrInvalidConfig, p.Particles)
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius %g", ErrInvalidConfig, p.Radius)
	case p.Viscosity <= 0:
		return fmt.Errorf("%w: viscosity %g", ErrInvalidConfig, p.Viscosity)
	case p.Temperature < 0:
		return fmt.Errorf("%w: temperature %g", ErrInvalidConfig, p.Temperature)
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt %g", ErrInvalidConfig, p.Dt)
	case p.Steps() < 1:
		return fmt.Errorf("%w: duration %g shorter than dt %g", ErrInvalidConfig, p.Duration, p.Dt)
	case p.Inject != InjectSurface && p.Inject != InjectVolume:
		return fmt.Errorf("%w: inject %q", ErrInvalidConfig, p.Inject)
	}
	return nil
}

type particle struct {
	src         randutil.NormSource
	reflections int
	dragSum     float64
	speedSum    float64
	err         error
}

// Run advances every particle for Params.Steps() steps. On cancellation or
// failure the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	p := s.params
	steps := p.Steps()
	n := p.Particles

	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Positions: make([][]array.Array[float64], 0, steps+1),
	}

	parts := make([]particle, n)
	start := make([]array.Array[float64], n)
	for i := range parts {
		parts[i].src = randutil.NewSource(p.Seed + uint64(i))
		if p.Inject == InjectSurface {
			start[i] = s.box.RandomPointOnSurface(parts[i].src)
		} else {
			start[i] = s.box.RandomPointInBounds(parts[i].src)
		}
	}
	result.Times = append(result.Times, 0)
	result.Positions = append(result.Positions, start)

	d := Diffusivity(p.Temperature, p.Viscosity, p.Radius)
	kick := math.Sqrt(2 * d * p.Dt)

	prev := start
	for k := 1; k <= steps; k++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w at step %d: %w", ErrCanceled, k, err)
		}
		t := float64(k) * p.Dt

		next := make([]array.Array[float64], n)
		ParallelFor(n, p.Workers, minChunk, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				next[i] = s.step(&parts[i], i, k, t, prev[i], kick)
			}
		})

		for i := range parts {
			if parts[i].err != nil {
				return result, parts[i].err
			}
		}

		result.Times = append(result.Times, t)
		result.Positions = append(result.Positions, next)
		for _, o := range s.observers {
			o.OnStep(k, t, next)
		}
		prev = next
	}

	result.Stats = s.stats(parts, start, prev, steps, d)
	return result, nil
}

func (s *Simulator) step(pt *particle, i, k int, t float64, x array.Array[float64], kick float64) array.Array[float64] {
	p := s.params
	u := s.field(x)
	pt.dragSum += fluid.StokesDrag(u, p.Viscosity, p.Radius).Magnitude()
	pt.speedSum += u.Magnitude()

	next := x.Add(u.MulScalar(p.Dt))
	if kick > 0 {
		for axis := 0; axis < 3; axis++ {
			next[axis] += kick * pt.src.NormFloat64()
		}
	}

	if !s.box.InBounds(next) {
		pt.reflections++
		s.box.ReflectInPlace(next)
	}
	if !array.IsFinite(next) {
		pt.err = &StepError{Particle: i, Step: k, Time: t, Position: next, Wrapped: ErrNonFinite}
	}
	return next
}

func (s *Simulator) stats(parts []particle, start, end []array.Array[float64], steps int, d float64) Stats {
	st := Stats{Steps: steps, Diffusivity: d}
	var drag, speed, msd float64
	for i := range parts {
		st.Reflections += parts[i].reflections
		drag += parts[i].dragSum
		speed += parts[i].speedSum
		msd += array.DistanceBetweenSq(start[i], end[i])
	}
	samples := float64(len(parts) * steps)
	st.MeanDrag = drag / samples
	st.MeanSpeed = speed / samples
	st.MSD = msd / float64(len(parts))
	return st
}

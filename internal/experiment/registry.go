package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/fluid"
)

var ErrUnknownFlow = errors.New("experiment: unknown flow")

// FlowFactory builds a velocity field from a scenario.
type FlowFactory func(cfg *config.Config) fluid.Field

type flowEntry struct {
	build       FlowFactory
	description string
}

type Registry struct {
	flows map[string]flowEntry
}

func NewRegistry() *Registry {
	r := &Registry{flows: make(map[string]flowEntry)}

	r.Register("uniform", "sphere velocity everywhere, no disturbance", func(cfg *config.Config) fluid.Field {
		u := cfg.SphereVelocity()
		return func(array.Array[float64]) array.Array[float64] { return u.Clone() }
	})
	r.Register("translating", "uniform stream past a fixed sphere", func(cfg *config.Config) fluid.Field {
		sphere, u, a := cfg.SpherePosition(), cfg.SphereVelocity(), cfg.Sphere.Radius
		return func(p array.Array[float64]) array.Array[float64] {
			return fluid.TranslatingFlowAt(p, sphere, u, a)
		}
	})
	r.Register("shear", "sphere held in simple shear (rate*z, 0, 0)", func(cfg *config.Config) fluid.Field {
		sphere, a, rate := cfg.SpherePosition(), cfg.Sphere.Radius, cfg.Fluid.ShearRate
		return func(p array.Array[float64]) array.Array[float64] {
			return fluid.ShearFlowAt(p, sphere, a, rate)
		}
	})
	r.Register("blake", "point force above a no-slip wall", blake(true))
	r.Register("blake-image", "wall correction of the point force only", blake(false))

	return r
}

func blake(includeDirect bool) FlowFactory {
	return func(cfg *config.Config) fluid.Field {
		sphere, force := cfg.SpherePosition(), cfg.ForceVector()
		zMin, mu := cfg.WallZ(), cfg.Fluid.Viscosity
		return func(p array.Array[float64]) array.Array[float64] {
			return fluid.BlakeFlowAt(p, sphere, force, zMin, mu, includeDirect)
		}
	}
}

// Register adds or replaces a flow.
func (r *Registry) Register(name, description string, build FlowFactory) {
	r.flows[name] = flowEntry{build: build, description: description}
}

func (r *Registry) GetField(name string, cfg *config.Config) (fluid.Field, error) {
	e, ok := r.flows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFlow, name, r.ListFields())
	}
	return e.build(cfg), nil
}

func (r *Registry) Describe(name string) string {
	return r.flows[name].description
}

func (r *Registry) ListFields() []string {
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

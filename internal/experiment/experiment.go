package experiment

import (
	"context"
	"errors"

	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/tracer"
)

// Experiment runs tracers through one configured flow.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	field     fluid.Field
	simulator *tracer.Simulator
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	return &Experiment{cfg: cfg, registry: registry}
}

// TracerParams maps the scenario onto tracer parameters.
func TracerParams(cfg *config.Config) tracer.Params {
	return tracer.Params{
		Particles:   cfg.Tracer.Particles,
		Radius:      cfg.Tracer.Radius,
		Viscosity:   cfg.Fluid.Viscosity,
		Temperature: cfg.Fluid.Temperature,
		Dt:          cfg.Tracer.Dt,
		Duration:    cfg.Tracer.Duration,
		Seed:        cfg.Tracer.Seed,
		Inject:      cfg.Tracer.Inject,
		Workers:     cfg.Tracer.Workers,
	}
}

func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	field, err := e.registry.GetField(e.cfg.Flow, e.cfg)
	if err != nil {
		return err
	}
	sim, err := tracer.New(field, e.cfg.Domain(), TracerParams(e.cfg))
	if err != nil {
		return err
	}
	e.field = field
	e.simulator = sim
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*tracer.Result, error) {
	if e.simulator == nil {
		return nil, errors.New("experiment: not set up")
	}
	return e.simulator.Run(ctx)
}

// Field returns the resolved flow, nil before Setup.
func (e *Experiment) Field() fluid.Field { return e.field }

// Simulator returns the underlying tracer simulator for adding observers.
func (e *Experiment) Simulator() *tracer.Simulator { return e.simulator }

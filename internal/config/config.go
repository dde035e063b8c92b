package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
)

// Defaults describe a micron-sized sphere in water, SI units throughout.
const (
	DefaultFlow        = "translating"
	DefaultRadius      = 1e-6
	DefaultViscosity   = 1e-3
	DefaultShearRate   = 10.0
	DefaultTemperature = 298.15
	DefaultBoxHalf     = 1e-5
	DefaultParticles   = 200
	DefaultTracerSize  = 1e-7
	DefaultDt          = 1e-3
	DefaultDuration    = 1.0
	DefaultInject      = InjectSurface
)

// Tracer injection modes.
const (
	InjectSurface = "surface"
	InjectVolume  = "volume"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Flow   string       `yaml:"flow"`
	Sphere SphereConfig `yaml:"sphere"`
	Fluid  FluidConfig  `yaml:"fluid"`
	Force  []float64    `yaml:"force"`
	Wall   WallConfig   `yaml:"wall"`
	Box    BoxConfig    `yaml:"box"`
	Tracer TracerConfig `yaml:"tracer"`
}

type SphereConfig struct {
	Position []float64 `yaml:"position"`
	Radius   float64   `yaml:"radius"`
	Velocity []float64 `yaml:"velocity"`
}

type FluidConfig struct {
	Viscosity   float64 `yaml:"viscosity"`
	ShearRate   float64 `yaml:"shear_rate"`
	Temperature float64 `yaml:"temperature"`
}

// WallConfig places the no-slip plane z = ZMin. With FromBox set the floor
// of the domain box is used instead.
type WallConfig struct {
	ZMin    float64 `yaml:"z_min"`
	FromBox bool    `yaml:"from_box"`
}

type BoxConfig struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

type TracerConfig struct {
	Particles int     `yaml:"particles"`
	Radius    float64 `yaml:"radius"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	Seed      uint64  `yaml:"seed"`
	Inject    string  `yaml:"inject"`
	Workers   int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Flow: DefaultFlow,
		Sphere: SphereConfig{
			Position: []float64{0, 0, DefaultBoxHalf / 2},
			Radius:   DefaultRadius,
			Velocity: []float64{1e-5, 0, 0},
		},
		Fluid: FluidConfig{
			Viscosity:   DefaultViscosity,
			ShearRate:   DefaultShearRate,
			Temperature: DefaultTemperature,
		},
		Force: []float64{1e-12, 0, 0},
		Wall:  WallConfig{FromBox: true},
		Box: BoxConfig{
			Min: []float64{-DefaultBoxHalf, -DefaultBoxHalf, 0},
			Max: []float64{DefaultBoxHalf, DefaultBoxHalf, 2 * DefaultBoxHalf},
		},
		Tracer: TracerConfig{
			Particles: DefaultParticles,
			Radius:    DefaultTracerSize,
			Dt:        DefaultDt,
			Duration:  DefaultDuration,
			Seed:      1,
			Inject:    DefaultInject,
		},
	}
}

// Load reads a YAML scenario on top of DefaultConfig and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks shapes and signs; it does not know which flow names exist.
func (c *Config) Validate() error {
	vectors := map[string][]float64{
		"sphere.position": c.Sphere.Position,
		"sphere.velocity": c.Sphere.Velocity,
		"force":           c.Force,
		"box.min":         c.Box.Min,
		"box.max":         c.Box.Max,
	}
	for name, v := range vectors {
		if len(v) != 3 {
			return invalid("%s needs 3 components, got %d", name, len(v))
		}
	}

	switch {
	case c.Flow == "":
		return invalid("flow is empty")
	case c.Sphere.Radius < 0:
		return invalid("sphere.radius %g is negative", c.Sphere.Radius)
	case c.Fluid.Viscosity <= 0:
		return invalid("fluid.viscosity %g must be positive", c.Fluid.Viscosity)
	case c.Fluid.Temperature < 0:
		return invalid("fluid.temperature %g is negative", c.Fluid.Temperature)
	case c.Tracer.Particles <= 0:
		return invalid("tracer.particles %d must be positive", c.Tracer.Particles)
	case c.Tracer.Radius <= 0:
		return invalid("tracer.radius %g must be positive", c.Tracer.Radius)
	case c.Tracer.Dt <= 0:
		return invalid("tracer.dt %g must be positive", c.Tracer.Dt)
	case c.Tracer.Duration < c.Tracer.Dt:
		return invalid("tracer.duration %g shorter than one step", c.Tracer.Duration)
	case c.Tracer.Workers < 0:
		return invalid("tracer.workers %d is negative", c.Tracer.Workers)
	}

	if c.Tracer.Inject != InjectSurface && c.Tracer.Inject != InjectVolume {
		return invalid("tracer.inject %q, want %q or %q", c.Tracer.Inject, InjectSurface, InjectVolume)
	}
	return nil
}

func (c *Config) SpherePosition() array.Array[float64] { return array.Of(c.Sphere.Position...) }
func (c *Config) SphereVelocity() array.Array[float64] { return array.Of(c.Sphere.Velocity...) }
func (c *Config) ForceVector() array.Array[float64]    { return array.Of(c.Force...) }

// Domain returns the simulation box; corner order does not matter.
func (c *Config) Domain() bbox.Box {
	return bbox.FromCorners(array.Of(c.Box.Min...), array.Of(c.Box.Max...))
}

// WallZ is the height of the no-slip plane used by the Blake flows.
func (c *Config) WallZ() float64 {
	if c.Wall.FromBox {
		return c.Domain().ZMin()
	}
	return c.Wall.ZMin
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Sphere.Position = append([]float64(nil), c.Sphere.Position...)
	out.Sphere.Velocity = append([]float64(nil), c.Sphere.Velocity...)
	out.Force = append([]float64(nil), c.Force...)
	out.Box.Min = append([]float64(nil), c.Box.Min...)
	out.Box.Max = append([]float64(nil), c.Box.Max...)
	return &out
}

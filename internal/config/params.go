package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

// params maps the scalar names accepted by SetParam to the field they set.
var params = map[string]func(c *Config, v float64){
	"radius":        func(c *Config, v float64) { c.Sphere.Radius = v },
	"viscosity":     func(c *Config, v float64) { c.Fluid.Viscosity = v },
	"shear_rate":    func(c *Config, v float64) { c.Fluid.ShearRate = v },
	"temperature":   func(c *Config, v float64) { c.Fluid.Temperature = v },
	"sphere_x":      func(c *Config, v float64) { c.Sphere.Position[0] = v },
	"sphere_y":      func(c *Config, v float64) { c.Sphere.Position[1] = v },
	"sphere_z":      func(c *Config, v float64) { c.Sphere.Position[2] = v },
	"velocity_x":    func(c *Config, v float64) { c.Sphere.Velocity[0] = v },
	"velocity_y":    func(c *Config, v float64) { c.Sphere.Velocity[1] = v },
	"velocity_z":    func(c *Config, v float64) { c.Sphere.Velocity[2] = v },
	"force_x":       func(c *Config, v float64) { c.Force[0] = v },
	"force_y":       func(c *Config, v float64) { c.Force[1] = v },
	"force_z":       func(c *Config, v float64) { c.Force[2] = v },
	"wall_z":        func(c *Config, v float64) { c.Wall.ZMin, c.Wall.FromBox = v, false },
	"tracer_radius": func(c *Config, v float64) { c.Tracer.Radius = v },
	"particles":     func(c *Config, v float64) { c.Tracer.Particles = int(v) },
	"dt":            func(c *Config, v float64) { c.Tracer.Dt = v },
	"duration":      func(c *Config, v float64) { c.Tracer.Duration = v },
}

// SetParam sets one scalar of the scenario by name. Vector components must
// already have three elements.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	if err := c.checkVectors(); err != nil {
		return err
	}
	set(c, v)
	return nil
}

func (c *Config) checkVectors() error {
	for name, vec := range map[string][]float64{
		"sphere.position": c.Sphere.Position,
		"sphere.velocity": c.Sphere.Velocity,
		"force":           c.Force,
	} {
		if len(vec) != 3 {
			return invalid("%s needs 3 components, got %d", name, len(vec))
		}
	}
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

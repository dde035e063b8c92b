package config

import "sort"

func preset(flow string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Flow = flow
	edit(c)
	return c
}

// Presets holds named scenarios keyed by flow name.
var Presets = map[string]map[string]*Config{
	"uniform": {
		"drift": preset("uniform", func(c *Config) {
			c.Sphere.Velocity = []float64{2e-5, 0, 0}
			c.Tracer.Inject = InjectVolume
		}),
	},
	"translating": {
		"slow": preset("translating", func(c *Config) {
			c.Sphere.Velocity = []float64{1e-6, 0, 0}
		}),
		"fast": preset("translating", func(c *Config) {
			c.Sphere.Velocity = []float64{5e-5, 0, 0}
			c.Tracer.Dt = 2e-4
		}),
		"sinking": preset("translating", func(c *Config) {
			c.Sphere.Velocity = []float64{0, 0, -1e-5}
			c.Sphere.Radius = 2e-6
		}),
	},
	"shear": {
		"gentle": preset("shear", func(c *Config) {
			c.Fluid.ShearRate = 1
		}),
		"strong": preset("shear", func(c *Config) {
			c.Fluid.ShearRate = 100
			c.Tracer.Dt = 1e-4
			c.Tracer.Duration = 0.2
		}),
	},
	"blake": {
		"near-wall": preset("blake", func(c *Config) {
			c.Sphere.Position = []float64{0, 0, 2e-6}
		}),
		"far-wall": preset("blake", func(c *Config) {
			c.Sphere.Position = []float64{0, 0, 1.5e-5}
		}),
		"push-down": preset("blake", func(c *Config) {
			c.Force = []float64{0, 0, -1e-12}
		}),
	},
	"blake-image": {
		"near-wall": preset("blake-image", func(c *Config) {
			c.Sphere.Position = []float64{0, 0, 2e-6}
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(flow, name string) *Config {
	flowPresets, ok := Presets[flow]
	if !ok {
		return nil
	}
	cfg, ok := flowPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(flow string) []string {
	flowPresets, ok := Presets[flow]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(flowPresets))
	for name := range flowPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"errors"
	"sort"
	"testing"
)

func TestSetParam(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		get   func(c *Config) float64
	}{
		{"radius", 2e-6, func(c *Config) float64 { return c.Sphere.Radius }},
		{"viscosity", 5e-3, func(c *Config) float64 { return c.Fluid.Viscosity }},
		{"sphere_z", 7e-6, func(c *Config) float64 { return c.Sphere.Position[2] }},
		{"force_x", 1e-12, func(c *Config) float64 { return c.Force[0] }},
		{"particles", 17, func(c *Config) float64 { return float64(c.Tracer.Particles) }},
		{"duration", 0.25, func(c *Config) float64 { return c.Tracer.Duration }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.SetParam(tt.name, tt.value); err != nil {
				t.Fatal(err)
			}
			if got := tt.get(cfg); got != tt.value {
				t.Errorf("%s = %g, want %g", tt.name, got, tt.value)
			}
		})
	}
}

func TestSetParam_WallLeavesBox(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("wall_z", 3e-6); err != nil {
		t.Fatal(err)
	}
	if cfg.Wall.FromBox || cfg.WallZ() != 3e-6 {
		t.Errorf("wall z = %g (from box %v)", cfg.WallZ(), cfg.Wall.FromBox)
	}
}

func TestSetParam_Errors(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("gravity", 9.8); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	cfg.Force = nil
	if err := cfg.SetParam("force_z", 1); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for short force, got %v", err)
	}
}

func TestParamNames(t *testing.T) {
	names := ParamNames()
	if len(names) != len(params) {
		t.Fatalf("expected %d names, got %d", len(params), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("names not sorted")
	}
}

// Package automation runs many tracer experiments from one description:
// scripted batches loaded from YAML, one-parameter sweeps and seeded
// ensembles.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/tracer"
)

var ErrEmptyBatch = errors.New("automation: batch has no steps")

// Progress, when set, is called after each finished run.
type Progress func(done, total int, label string)

// Batch is a scripted sequence of runs.
type Batch struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []BatchStep `yaml:"steps"`

	dir string
}

// BatchStep describes one run. The scenario is built from defaults, then
// Preset, then the Scenario file, then Flow, then Set.
type BatchStep struct {
	Name     string             `yaml:"name"`
	Flow     string             `yaml:"flow"`
	Preset   string             `yaml:"preset"`
	Scenario string             `yaml:"scenario"`
	Set      map[string]float64 `yaml:"set"`
	Save     bool               `yaml:"save"`
}

type StepResult struct {
	Name   string
	Config *config.Config
	Result *tracer.Result
	Save   bool
}

// LoadBatch reads a batch file. Scenario paths in it are relative to the
// file's directory.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	if len(b.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyBatch)
	}
	b.dir = filepath.Dir(path)
	return &b, nil
}

// Config resolves the step's scenario; relative Scenario paths are joined
// to dir.
func (s BatchStep) Config(dir string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	flow := s.Flow
	if flow == "" {
		flow = cfg.Flow
	}
	if s.Preset != "" {
		p := config.GetPreset(flow, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s for flow %s (available: %v)", s.Preset, flow, config.ListPresets(flow))
		}
		cfg = p
	}
	if s.Scenario != "" {
		path := s.Scenario
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if s.Flow != "" {
		cfg.Flow = s.Flow
	}
	for name, v := range s.Set {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func (s BatchStep) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step-%d", i+1)
}

// RunBatch executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunBatch(ctx context.Context, b *Batch, registry *experiment.Registry, progress Progress) ([]StepResult, error) {
	results := make([]StepResult, 0, len(b.Steps))

	for i, step := range b.Steps {
		label := step.label(i)
		cfg, err := step.Config(b.dir)
		if err != nil {
			return results, fmt.Errorf("%s: %w", label, err)
		}

		result, err := runOne(ctx, cfg, registry)
		if err != nil {
			return results, fmt.Errorf("%s: %w", label, err)
		}

		results = append(results, StepResult{Name: label, Config: cfg, Result: result, Save: step.Save})
		if progress != nil {
			progress(i+1, len(b.Steps), label)
		}
	}
	return results, nil
}

func runOne(ctx context.Context, cfg *config.Config, registry *experiment.Registry) (*tracer.Result, error) {
	exp := experiment.New(cfg, registry)
	if err := exp.Setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return exp.Run(ctx)
}

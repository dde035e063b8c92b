package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/tracer"
)

const (
	metadataFile   = "metadata.json"
	scenarioFile   = "scenario.yaml"
	trajectoryFile = "trajectory.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrCorruptRun  = errors.New("storage: corrupt run data")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string       `json:"id"`
	Flow      string       `json:"flow"`
	Timestamp time.Time    `json:"timestamp"`
	Seed      uint64       `json:"seed"`
	Dt        float64      `json:"dt"`
	Duration  float64      `json:"duration"`
	Particles int          `json:"particles"`
	Inject    string       `json:"inject"`
	Stats     tracer.Stats `json:"stats"`
}

// Save writes a run directory with metadata, the scenario and the
// trajectory, and returns the run ID.
func (s *Store) Save(cfg *config.Config, result *tracer.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Flow, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Flow:      cfg.Flow,
		Timestamp: now,
		Seed:      cfg.Tracer.Seed,
		Dt:        cfg.Tracer.Dt,
		Duration:  cfg.Tracer.Duration,
		Particles: cfg.Tracer.Particles,
		Inject:    cfg.Tracer.Inject,
		Stats:     result.Stats,
	}
	if len(result.Positions) > 0 {
		meta.Particles = len(result.Positions[0])
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, scenarioFile), cfg); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTrajectory(path string, result *tracer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "particle", "x", "y", "z"}); err != nil {
		return err
	}
	for k, frame := range result.Positions {
		t := formatFloat(result.Times[k])
		for i, p := range frame {
			row := []string{t, strconv.Itoa(i), formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	return &meta, nil
}

// LoadScenario reads back the configuration the run was made with.
func (s *Store) LoadScenario(runID string) (*config.Config, error) {
	path := filepath.Join(s.baseDir, runID, scenarioFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return config.Load(path)
}

// LoadTrajectory rebuilds the positions of a saved run. Stats come from
// the run metadata.
func (s *Store) LoadTrajectory(runID string) (*tracer.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("%w: %s: header: %v", ErrCorruptRun, runID, err)
	}

	result := &tracer.Result{Stats: meta.Stats}
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
		}

		vals := make([]float64, 5)
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %v", ErrCorruptRun, runID, line, err)
			}
			vals[j] = v
		}

		particle := int(vals[1])
		if particle == 0 {
			result.Times = append(result.Times, vals[0])
			result.Positions = append(result.Positions, make([]array.Array[float64], 0, meta.Particles))
		}
		k := len(result.Positions) - 1
		if k < 0 || particle != len(result.Positions[k]) {
			return nil, fmt.Errorf("%w: %s line %d: particle %d out of order", ErrCorruptRun, runID, line, particle)
		}
		result.Positions[k] = append(result.Positions[k], array.Of(vals[2], vals[3], vals[4]))
	}

	for k, frame := range result.Positions {
		if len(frame) != meta.Particles {
			return nil, fmt.Errorf("%w: %s frame %d: %d of %d particles", ErrCorruptRun, runID, k, len(frame), meta.Particles)
		}
	}
	return result, nil
}

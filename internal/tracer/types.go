package tracer

import (
	"fmt"

	"github.com/san-kum/stokeskit/internal/array"
)

// Injection modes for initial tracer positions.
const (
	InjectSurface = "surface"
	InjectVolume  = "volume"
)

// Params describes a tracer run. Units are SI.
type Params struct {
	Particles   int
	Radius      float64
	Viscosity   float64
	Temperature float64
	Dt          float64
	Duration    float64
	Seed        uint64
	Inject      string
	Workers     int
}

// Steps is the number of whole time steps in Duration.
func (p Params) Steps() int {
	return int(p.Duration/p.Dt + 1e-9)
}

// Stats summarises a finished run.
type Stats struct {
	Steps       int     `json:"steps"`
	Reflections int     `json:"reflections"`
	MeanDrag    float64 `json:"mean_drag"`
	MeanSpeed   float64 `json:"mean_speed"`
	MSD         float64 `json:"msd"`
	Diffusivity float64 `json:"diffusivity"`
}

// Metric returns a statistic by its JSON name.
func (s Stats) Metric(name string) (float64, error) {
	switch name {
	case "steps":
		return float64(s.Steps), nil
	case "reflections":
		return float64(s.Reflections), nil
	case "mean_drag":
		return s.MeanDrag, nil
	case "mean_speed":
		return s.MeanSpeed, nil
	case "msd":
		return s.MSD, nil
	case "diffusivity":
		return s.Diffusivity, nil
	}
	return 0, fmt.Errorf("%w: %s (available: %v)", ErrUnknownMetric, name, MetricNames)
}

// MetricNames lists the names accepted by Stats.Metric.
var MetricNames = []string{"steps", "reflections", "mean_drag", "mean_speed", "msd", "diffusivity"}

// Result holds positions for every particle at every recorded time.
// Positions[k][i] is particle i at Times[k].
type Result struct {
	Times     []float64
	Positions [][]array.Array[float64]
	Stats     Stats
}

// Final returns the last recorded positions.
func (r *Result) Final() []array.Array[float64] {
	return r.Positions[len(r.Positions)-1]
}

// Path returns one particle's trajectory.
func (r *Result) Path(i int) []array.Array[float64] {
	out := make([]array.Array[float64], len(r.Positions))
	for k, frame := range r.Positions {
		out[k] = frame[i]
	}
	return out
}

// MSD is the mean squared displacement from the first frame, for frames
// 0 through last inclusive.
func (r *Result) MSD(last int) []float64 {
	out := make([]float64, 0, last+1)
	origin := r.Positions[0]
	for k := 0; k <= last; k++ {
		var sum float64
		for i, p := range r.Positions[k] {
			d := p.Sub(origin[i])
			sum += d.Dot(d)
		}
		out = append(out, sum/float64(max(1, len(origin))))
	}
	return out
}

// Observer is notified after every completed step. The positions slice is
// shared with the result and must not be modified.
type Observer interface {
	OnStep(step int, t float64, positions []array.Array[float64])
}

type ObserverFunc func(step int, t float64, positions []array.Array[float64])

func (f ObserverFunc) OnStep(step int, t float64, positions []array.Array[float64]) {
	f(step, t, positions)
}

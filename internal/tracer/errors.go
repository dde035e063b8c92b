package tracer

import (
	"errors"
	"fmt"

	"github.com/san-kum/stokeskit/internal/array"
)

var (
	// ErrInvalidConfig indicates non-positive sizes, steps or particle counts.
	ErrInvalidConfig = errors.New("tracer: invalid configuration")

	// ErrNonFinite indicates a particle position became NaN or Inf.
	ErrNonFinite = errors.New("tracer: non-finite position")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("tracer: run canceled")

	ErrUnknownMetric = errors.New("tracer: unknown metric")
)

// StepError locates a failure to one particle at one step.
type StepError struct {
	Particle int
	Step     int
	Time     float64
	Position array.Array[float64]
	Wrapped  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("particle %d at step %d (t=%g, x=%v): %v", e.Particle, e.Step, e.Time, e.Position, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// Package tensor provides a fixed-shape, row-major two-dimensional container
// built on the element types of package array.
package tensor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/stokeskit/internal/array"
)

var (
	// ErrBadShape is returned when a requested shape has a non-positive side.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates a checked access with i >= rows or j >= cols.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrShapeMismatch indicates input data whose size does not fit the shape.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
)

func tensorErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Tensor.%s(%d,%d): %w", method, i, j, err)
}

// Index addresses one element as (row, column).
type Index struct {
	I, J int
}

// Tensor is a rows×cols matrix stored flat, element (i, j) at i*cols+j.
type Tensor[T array.Number] struct {
	rows, cols int
	data       []T
}

// New returns a zero-filled rows×cols tensor.
func New[T array.Number](rows, cols int) (*Tensor[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}
	return &Tensor[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}, nil
}

// FromFlat copies a row-major slice of exactly rows*cols elements.
func FromFlat[T array.Number](rows, cols int, data []T) (*Tensor[T], error) {
	t, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromFlat(%d,%d) with %d elements: %w", rows, cols, len(data), ErrShapeMismatch)
	}
	copy(t.data, data)
	return t, nil
}

// From2D copies a rectangular slice of rows.
func From2D[T array.Number](rows [][]T) (*Tensor[T], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("From2D: %w", ErrBadShape)
	}
	t, err := New[T](len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != t.cols {
			return nil, fmt.Errorf("From2D: row %d has %d elements, want %d: %w", i, len(row), t.cols, ErrShapeMismatch)
		}
		copy(t.data[i*t.cols:], row)
	}
	return t, nil
}

// Identity returns the n×n identity.
func Identity[T array.Number](n int) (*Tensor[T], error) {
	t, err := New[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t, nil
}

// Must unwraps a constructor result. It is for shapes fixed in code, never
// user input; a shape error panics.
func Must[T array.Number](t *Tensor[T], err error) *Tensor[T] {
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tensor[T]) Rows() int { return t.rows }
func (t *Tensor[T]) Cols() int { return t.cols }

func (t *Tensor[T]) Shape() (int, int) { return t.rows, t.cols }

func (t *Tensor[T]) flatten(i, j int) int { return i*t.cols + j }

func (t *Tensor[T]) check(method string, i, j int) error {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		return tensorErrorf(method, i, j, ErrOutOfRange)
	}
	return nil
}

// At is the bounds-checked read.
func (t *Tensor[T]) At(i, j int) (T, error) {
	if err := t.check("At", i, j); err != nil {
		var zero T
		return zero, err
	}
	return t.data[t.flatten(i, j)], nil
}

func (t *Tensor[T]) AtIndex(idx Index) (T, error) {
	return t.At(idx.I, idx.J)
}

// Set is the bounds-checked write.
func (t *Tensor[T]) Set(i, j int, v T) error {
	if err := t.check("Set", i, j); err != nil {
		return err
	}
	t.data[t.flatten(i, j)] = v
	return nil
}

// Get reads without a bounds check on i and j individually; a column past
// the end silently aliases into the next row.
func (t *Tensor[T]) Get(i, j int) T {
	return t.data[t.flatten(i, j)]
}

// SetUnchecked is the write counterpart of Get.
func (t *Tensor[T]) SetUnchecked(i, j int, v T) {
	t.data[t.flatten(i, j)] = v
}

func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return &Tensor[T]{rows: t.rows, cols: t.cols, data: data}
}

// ToFlat returns a row-major copy of the elements.
func (t *Tensor[T]) ToFlat() []T {
	out := make([]T, len(t.data))
	copy(out, t.data)
	return out
}

func (t *Tensor[T]) To2D() [][]T {
	out := make([][]T, t.rows)
	for i := range out {
		out[i] = make([]T, t.cols)
		copy(out[i], t.data[i*t.cols:(i+1)*t.cols])
	}
	return out
}

// ContainsNaN is always false for integer element types.
func (t *Tensor[T]) ContainsNaN() bool {
	for _, v := range t.data {
		if math.IsNaN(float64(v)) {
			return true
		}
	}
	return false
}

func (t *Tensor[T]) String() string {
	var sb strings.Builder
	for i := 0; i < t.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < t.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(&sb, t.data[t.flatten(i, j)])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// AsType converts every element to U.
func AsType[U, T array.Number](t *Tensor[T]) *Tensor[U] {
	out := &Tensor[U]{rows: t.rows, cols: t.cols, data: make([]U, len(t.data))}
	for i, v := range t.data {
		out.data[i] = U(v)
	}
	return out
}

package tensor

import "github.com/san-kum/stokeskit/internal/array"

// Row is a view of one row of a tensor. It holds a reference to the tensor,
// not a copy: writes through the row land in the tensor, and the view must
// not be kept past the tensor's use.
type Row[T array.Number] struct {
	t *Tensor[T]
	i int
}

// Row returns the view of row i, or ErrOutOfRange.
func (t *Tensor[T]) Row(i int) (Row[T], error) {
	if i < 0 || i >= t.rows {
		return Row[T]{}, tensorErrorf("Row", i, 0, ErrOutOfRange)
	}
	return Row[T]{t: t, i: i}, nil
}

// RowUnchecked returns the view of row i without validating i.
func (t *Tensor[T]) RowUnchecked(i int) Row[T] {
	return Row[T]{t: t, i: i}
}

func (r Row[T]) Len() int   { return r.t.cols }
func (r Row[T]) Index() int { return r.i }

func (r Row[T]) At(j int) (T, error) {
	return r.t.At(r.i, j)
}

func (r Row[T]) Set(j int, v T) error {
	return r.t.Set(r.i, j, v)
}

func (r Row[T]) Get(j int) T {
	return r.t.Get(r.i, j)
}

func (r Row[T]) SetUnchecked(j int, v T) {
	r.t.SetUnchecked(r.i, j, v)
}

// ToArray copies the row out of the tensor.
func (r Row[T]) ToArray() array.Array[T] {
	start := r.i * r.t.cols
	return array.Of(r.t.data[start : start+r.t.cols]...)
}

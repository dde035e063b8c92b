package tensor

import "github.com/san-kum/stokeskit/internal/array"

// Shape mismatches in this file panic with *array.ShapeError, matching the
// array package: the shapes involved are fixed by the calling code.

func mustMatch(op string, left, right int) {
	if err := array.CheckShape(op, left, right); err != nil {
		panic(err)
	}
}

// Mul computes the (I×K)·(K×J) product.
func Mul[T array.Number](a, b *Tensor[T]) *Tensor[T] {
	mustMatch("Mul", a.cols, b.rows)

	out := Must(New[T](a.rows, b.cols))
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var acc T
			for k := 0; k < a.cols; k++ {
				acc += a.data[i*a.cols+k] * b.data[k*b.cols+j]
			}
			out.data[i*out.cols+j] = acc
		}
	}
	return out
}

// MulVec computes the (I×K)·K product.
func MulVec[T array.Number](a *Tensor[T], v array.Array[T]) array.Array[T] {
	mustMatch("MulVec", a.cols, len(v))

	out := array.New[T](a.rows)
	for i := 0; i < a.rows; i++ {
		var acc T
		for k := 0; k < a.cols; k++ {
			acc += a.data[i*a.cols+k] * v[k]
		}
		out[i] = acc
	}
	return out
}

// Add is the elementwise sum of two tensors of the same shape.
func Add[T array.Number](a, b *Tensor[T]) *Tensor[T] {
	mustMatch("Add rows", a.rows, b.rows)
	mustMatch("Add cols", a.cols, b.cols)

	out := a.Clone()
	for i := range out.data {
		out.data[i] += b.data[i]
	}
	return out
}

// Scale returns a copy with every element multiplied by s.
func (t *Tensor[T]) Scale(s T) *Tensor[T] {
	out := t.Clone()
	for i := range out.data {
		out.data[i] *= s
	}
	return out
}

// Transpose returns the cols×rows transpose.
func (t *Tensor[T]) Transpose() *Tensor[T] {
	out := Must(New[T](t.cols, t.rows))
	for i := 0; i < t.rows; i++ {
		for j := 0; j < t.cols; j++ {
			out.data[j*t.rows+i] = t.data[i*t.cols+j]
		}
	}
	return out
}

// FlattenBinIndex maps a 2D bin coordinate to its row-major position.
func FlattenBinIndex(ix, iy, binsY int) int {
	return ix*binsY + iy
}

// UnflattenBinIndex inverts FlattenBinIndex.
func UnflattenBinIndex(index, binsY int) (ix, iy int) {
	return index / binsY, index % binsY
}

package array

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// Number is the element constraint for arrays and tensors.
type Number interface {
	constraints.Integer | constraints.Float
}

// Array is a fixed-length numeric vector.
type Array[T Number] []T

// New returns a zero-filled array of length n.
func New[T Number](n int) Array[T] {
	return make(Array[T], n)
}

// Of copies vals into a new array.
func Of[T Number](vals ...T) Array[T] {
	a := make(Array[T], len(vals))
	copy(a, vals)
	return a
}

// Fill returns an array of length n with every element set to v.
func Fill[T Number](n int, v T) Array[T] {
	a := make(Array[T], n)
	for i := range a {
		a[i] = v
	}
	return a
}

func (a Array[T]) Clone() Array[T] {
	c := make(Array[T], len(a))
	copy(c, a)
	return c
}

func (a Array[T]) Len() int    { return len(a) }
func (a Array[T]) Empty() bool { return len(a) == 0 }
func (a Array[T]) Front() T    { return a[0] }
func (a Array[T]) Back() T     { return a[len(a)-1] }

// At is the bounds-checked accessor.
func (a Array[T]) At(i int) (T, error) {
	if i < 0 || i >= len(a) {
		var zero T
		return zero, indexError(i, len(a))
	}
	return a[i], nil
}

// Set writes v at index i and returns the receiver for chaining.
func (a Array[T]) Set(i int, v T) Array[T] {
	a[i] = v
	return a
}

// CopySet returns a copy of a with index i replaced by v.
func (a Array[T]) CopySet(i int, v T) Array[T] {
	return a.Clone().Set(i, v)
}

// AddIndex adds v to the element at index i and returns the receiver.
func (a Array[T]) AddIndex(i int, v T) Array[T] {
	a[i] += v
	return a
}

// CopyAddIndex returns a copy of a with v added at index i.
func (a Array[T]) CopyAddIndex(i int, v T) Array[T] {
	return a.Clone().AddIndex(i, v)
}

func (a Array[T]) Sum() T {
	var out T
	for _, v := range a {
		out += v
	}
	return out
}

func (a Array[T]) Prod() T {
	out := T(1)
	for _, v := range a {
		out *= v
	}
	return out
}

// CumSum returns the running totals: element i is the sum of a[0..i].
func (a Array[T]) CumSum() Array[T] {
	out := make(Array[T], len(a))
	var running T
	for i, v := range a {
		running += v
		out[i] = running
	}
	return out
}

// CumProd returns the running products: element i is the product of a[0..i].
func (a Array[T]) CumProd() Array[T] {
	out := make(Array[T], len(a))
	running := T(1)
	for i, v := range a {
		running *= v
		out[i] = running
	}
	return out
}

func (a Array[T]) Dot(b Array[T]) T {
	mustMatch("Dot", len(a), len(b))
	return a.Mul(b).Sum()
}

// Cross is the three-dimensional cross product, written as
// out[i] = sum_jk eps(i,j,k) a[j] b[k]. Both operands must have length 3.
func (a Array[T]) Cross(b Array[T]) Array[T] {
	mustMatch("Cross", len(a), 3)
	mustMatch("Cross", len(b), 3)

	out := make(Array[T], 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				eps := LeviCivita(i, j, k)
				if eps == 0 {
					continue
				}
				out[i] += T(eps) * a[j] * b[k]
			}
		}
	}
	return out
}

// MagnitudeSq accumulates in float64 so integer arrays neither overflow nor
// truncate.
func (a Array[T]) MagnitudeSq() float64 {
	total := 0.0
	for _, v := range a {
		f := float64(v)
		total += f * f
	}
	return total
}

func (a Array[T]) Magnitude() float64 {
	return math.Sqrt(a.MagnitudeSq())
}

func (a Array[T]) Contains(v T) bool {
	for _, x := range a {
		if x == v {
			return true
		}
	}
	return false
}

func (a Array[T]) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// AsType converts every element of a to U.
func AsType[U, T Number](a Array[T]) Array[U] {
	out := make(Array[U], len(a))
	for i, v := range a {
		out[i] = U(v)
	}
	return out
}

func DistanceBetweenSq[T Number](a, b Array[T]) float64 {
	return a.Sub(b).MagnitudeSq()
}

func DistanceBetween[T Number](a, b Array[T]) float64 {
	return a.Sub(b).Magnitude()
}

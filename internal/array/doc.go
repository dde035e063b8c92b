// Package array provides fixed-length numeric arrays with elementwise algebra.
//
// An [Array] is a named slice whose length is fixed once it is created: no
// operation in this package appends to or truncates an array. Binary
// operations between two arrays require equal lengths and panic with a
// [*ShapeError] otherwise, the same way an out-of-range index panics.
//
//   - [Array]: arithmetic, reductions, norms, cross/dot products
//   - [Mask]: the boolean result of elementwise comparisons
//   - [Delta], [LeviCivita]: index symbols used by tensor formulas
//
// # Access
//
// Plain indexing (a[i]) is the unchecked fast path. [Array.At] is the checked
// accessor and returns an error wrapping [ErrOutOfRange].
//
// # Example
//
//	a := array.Of(1.0, 2.0, 3.0)
//	b := array.Of(4.0, 5.0, 6.0)
//	c := a.Add(b).MulScalar(2)
//	n := a.Cross(b).Magnitude()
//
// # Thread Safety
//
// Arrays carry no internal state. Concurrent reads are safe; concurrent
// writes to the same array are not.
package array

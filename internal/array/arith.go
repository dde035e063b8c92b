package array

// Elementwise arithmetic. Array-array forms panic with *ShapeError when the
// lengths differ. The *InPlace forms overwrite the receiver and return it.

func (a Array[T]) Add(b Array[T]) Array[T] {
	mustMatch("Add", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func (a Array[T]) Sub(b Array[T]) Array[T] {
	mustMatch("Sub", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func (a Array[T]) Mul(b Array[T]) Array[T] {
	mustMatch("Mul", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

func (a Array[T]) Div(b Array[T]) Array[T] {
	mustMatch("Div", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out
}

func (a Array[T]) AddScalar(s T) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] + s
	}
	return out
}

func (a Array[T]) SubScalar(s T) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] - s
	}
	return out
}

func (a Array[T]) MulScalar(s T) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] * s
	}
	return out
}

func (a Array[T]) DivScalar(s T) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = a[i] / s
	}
	return out
}

func (a Array[T]) Neg() Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = -a[i]
	}
	return out
}

// ScalarAdd computes s + a.
func ScalarAdd[T Number](s T, a Array[T]) Array[T] {
	return a.AddScalar(s)
}

// ScalarSub computes s - a elementwise.
func ScalarSub[T Number](s T, a Array[T]) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = s - a[i]
	}
	return out
}

// ScalarMul computes s * a.
func ScalarMul[T Number](s T, a Array[T]) Array[T] {
	return a.MulScalar(s)
}

// ScalarDiv computes s / a elementwise.
func ScalarDiv[T Number](s T, a Array[T]) Array[T] {
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = s / a[i]
	}
	return out
}

func (a Array[T]) AddInPlace(b Array[T]) Array[T] {
	mustMatch("AddInPlace", len(a), len(b))
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a Array[T]) SubInPlace(b Array[T]) Array[T] {
	mustMatch("SubInPlace", len(a), len(b))
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a Array[T]) MulInPlace(b Array[T]) Array[T] {
	mustMatch("MulInPlace", len(a), len(b))
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (a Array[T]) DivInPlace(b Array[T]) Array[T] {
	mustMatch("DivInPlace", len(a), len(b))
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

func (a Array[T]) AddScalarInPlace(s T) Array[T] {
	for i := range a {
		a[i] += s
	}
	return a
}

func (a Array[T]) SubScalarInPlace(s T) Array[T] {
	for i := range a {
		a[i] -= s
	}
	return a
}

func (a Array[T]) MulScalarInPlace(s T) Array[T] {
	for i := range a {
		a[i] *= s
	}
	return a
}

func (a Array[T]) DivScalarInPlace(s T) Array[T] {
	for i := range a {
		a[i] /= s
	}
	return a
}

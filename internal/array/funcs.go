package array

import "math"

// Pow raises every element to exponent. Integer element types are computed
// in float64 and truncated back.
func Pow[T Number](a Array[T], exponent T) Array[T] {
	out := make(Array[T], len(a))
	e := float64(exponent)
	for i, v := range a {
		out[i] = T(math.Pow(float64(v), e))
	}
	return out
}

func Abs[T Number](a Array[T]) Array[T] {
	out := make(Array[T], len(a))
	for i, v := range a {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}

func ElementwiseMin[T Number](a, b Array[T]) Array[T] {
	mustMatch("ElementwiseMin", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = min(a[i], b[i])
	}
	return out
}

func ElementwiseMax[T Number](a, b Array[T]) Array[T] {
	mustMatch("ElementwiseMax", len(a), len(b))
	out := make(Array[T], len(a))
	for i := range a {
		out[i] = max(a[i], b[i])
	}
	return out
}

// IsFinite reports whether no element is NaN or infinite.
func IsFinite[T Number](a Array[T]) bool {
	for _, v := range a {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

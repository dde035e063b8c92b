package array_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/randutil"
)

// requireShapePanic runs fn and asserts it panics with a *array.ShapeError.
func requireShapePanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		assert.ErrorIs(t, err, array.ErrShapeMismatch)
		var se *array.ShapeError
		assert.True(t, errors.As(err, &se))
	}()
	fn()
}

func TestAt(t *testing.T) {
	a := array.Of(3, 5, 7)

	v, err := a.At(2)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = a.At(3)
	assert.ErrorIs(t, err, array.ErrOutOfRange)

	_, err = a.At(-1)
	assert.ErrorIs(t, err, array.ErrOutOfRange)
}

func TestContainerHelpers(t *testing.T) {
	a := array.Of(1.5, 2.5, 3.5)
	assert.Equal(t, 3, a.Len())
	assert.False(t, a.Empty())
	assert.Equal(t, 1.5, a.Front())
	assert.Equal(t, 3.5, a.Back())
	assert.True(t, array.New[int](0).Empty())
	assert.Equal(t, array.Of(2, 2, 2, 2), array.Fill(4, 2))
	assert.Equal(t, "(1.5, 2.5, 3.5)", a.String())
}

func TestNeg(t *testing.T) {
	assert.Equal(t, array.Of(-5, 7, 0), array.Of(5, -7, 0).Neg())
}

func TestAddition(t *testing.T) {
	a1 := array.Of(3, 5, 7, 11, 13)
	a2 := array.Of(17, 23, 27, 31, 37)
	wantSum := array.Of(20, 28, 34, 42, 50)
	wantScalar := array.Of(20, 22, 24, 28, 30)

	assert.Equal(t, wantSum, a1.Add(a2))
	assert.Equal(t, wantScalar, a1.AddScalar(17))
	assert.Equal(t, wantScalar, array.ScalarAdd(17, a1))

	inPlace := a1.Clone()
	assert.Equal(t, wantSum, inPlace.AddInPlace(a2))
	assert.Equal(t, wantSum, inPlace)

	inPlace = a1.Clone()
	assert.Equal(t, wantScalar, inPlace.AddScalarInPlace(17))
	assert.Equal(t, wantScalar, inPlace)

	assert.Equal(t, array.Of(3, 5, 7, 11, 13), a1, "operands must be untouched")
}

func TestSubtraction(t *testing.T) {
	a1 := array.Of(3, 23, 7, 11, 37)
	a2 := array.Of(17, 5, 27, 31, 37)
	wantDiff := array.Of(-14, 18, -20, -20, 0)
	wantScalar := array.Of(0, -12, 10, 14, 20)

	assert.Equal(t, wantDiff, a1.Sub(a2))
	assert.Equal(t, wantScalar, a2.SubScalar(17))
	assert.Equal(t, wantScalar, array.ScalarSub(17, a2).Neg())

	inPlace := a1.Clone()
	assert.Equal(t, wantDiff, inPlace.SubInPlace(a2))
	assert.Equal(t, wantDiff, inPlace)

	inPlace = a2.Clone()
	assert.Equal(t, wantScalar, inPlace.SubScalarInPlace(17))
}

func TestMultiplication(t *testing.T) {
	a1 := array.Of(3, 5, 7, 11, 13)
	a2 := array.Of(17, 23, 27, 31, 37)
	wantProd := array.Of(51, 115, 189, 341, 481)
	wantScalar := array.Of(51, 85, 119, 187, 221)

	assert.Equal(t, wantProd, a1.Mul(a2))
	assert.Equal(t, wantScalar, a1.MulScalar(17))
	assert.Equal(t, wantScalar, array.ScalarMul(17, a1))

	inPlace := a1.Clone()
	assert.Equal(t, wantProd, inPlace.MulInPlace(a2))
	inPlace = a1.Clone()
	assert.Equal(t, wantScalar, inPlace.MulScalarInPlace(17))
}

func TestDivision(t *testing.T) {
	a1 := array.Of(2.0, 9.0, -4.0)
	a2 := array.Of(4.0, 3.0, 8.0)

	assert.Equal(t, array.Of(0.5, 3.0, -0.5), a1.Div(a2))
	assert.Equal(t, array.Of(1.0, 4.5, -2.0), a1.DivScalar(2))
	assert.Equal(t, array.Of(0.5, 2.0/3.0, 0.25), array.ScalarDiv(2.0, a2))

	inPlace := a1.Clone()
	assert.Equal(t, array.Of(0.5, 3.0, -0.5), inPlace.DivInPlace(a2))
	inPlace = a1.Clone()
	assert.Equal(t, array.Of(1.0, 4.5, -2.0), inPlace.DivScalarInPlace(2))

	// Floating division by zero propagates.
	q := array.Of(1.0, 0.0).Div(array.Of(0.0, 0.0))
	assert.True(t, math.IsInf(q[0], 1))
	assert.True(t, math.IsNaN(q[1]))
}

// randomArray draws n values in [-10, 10). With nonZero set, every value
// has magnitude at least 0.5 so it is safe to divide by.
func randomArray(src randutil.Source, n int, nonZero bool) array.Array[float64] {
	out := array.New[float64](n)
	for i := range out {
		v := randutil.Uniform(src, -10, 10)
		if nonZero {
			v = math.Copysign(0.5+math.Abs(v), v)
		}
		out[i] = v
	}
	return out
}

func TestArithmeticIdentities(t *testing.T) {
	src := randutil.NewSource(17)

	for _, n := range []int{1, 2, 3, 4, 7, 16} {
		for trial := 0; trial < 25; trial++ {
			a := randomArray(src, n, false)
			b := randomArray(src, n, true)
			s := randutil.Uniform(src, -10, 10)

			assert.InDeltaSlice(t, a, a.Add(b).Sub(b), 1e-12, "(a+b)-b, n=%d", n)
			assert.InDeltaSlice(t, a, a.Mul(b).Div(b), 1e-12, "(a*b)/b, n=%d", n)
			assert.Equal(t, a.Add(b), b.Add(a), "a+b=b+a, n=%d", n)
			assert.Equal(t, a.Mul(b), b.Mul(a), "a*b=b*a, n=%d", n)
			assert.Equal(t, a.MulScalar(s), a.MulScalar(s).Add(a.MulScalar(0)), "a*s+0, n=%d", n)
			assert.Equal(t, a, a.Neg().Neg(), "--a, n=%d", n)
		}
	}
}

func TestShapeMismatchPanics(t *testing.T) {
	a := array.Of(1, 2, 3)
	b := array.Of(1, 2)

	requireShapePanic(t, func() { a.Add(b) })
	requireShapePanic(t, func() { a.Sub(b) })
	requireShapePanic(t, func() { a.Mul(b) })
	requireShapePanic(t, func() { a.Div(b) })
	requireShapePanic(t, func() { a.AddInPlace(b) })
	requireShapePanic(t, func() { a.Lt(b) })
	requireShapePanic(t, func() { a.Dot(b) })
	requireShapePanic(t, func() { array.ElementwiseMin(a, b) })
	requireShapePanic(t, func() { array.Of(1, 2).Cross(array.Of(3, 4)) })

	assert.NoError(t, array.CheckShape("Add", 3, 3))
	assert.ErrorIs(t, array.CheckShape("Add", 3, 2), array.ErrShapeMismatch)
}

func TestReductions(t *testing.T) {
	a := array.Of(1, 2, 3, 5, 7, 11, 13)

	assert.Equal(t, 42, a.Sum())
	assert.Equal(t, 30030, a.Prod())
	assert.Equal(t, array.Of(1, 3, 6, 11, 18, 29, 42), a.CumSum())
	assert.Equal(t, array.Of(1, 2, 6, 30, 210, 2310, 30030), a.CumProd())

	assert.Equal(t, a.Sum(), a.CumSum().Back())
	assert.Equal(t, a.Prod(), a.CumProd().Back())

	f := array.Of(0.5, 4.0, -1.5)
	assert.InDelta(t, f.Sum(), f.CumSum().Back(), 1e-15)
	assert.InDelta(t, f.Prod(), f.CumProd().Back(), 1e-15)
}

func TestDot(t *testing.T) {
	assert.Equal(t, 32, array.Of(1, 2, 3).Dot(array.Of(4, 5, 6)))
}

func TestCross(t *testing.T) {
	ex := array.Of(1.0, 0.0, 0.0)
	ey := array.Of(0.0, 1.0, 0.0)
	ez := array.Of(0.0, 0.0, 1.0)

	assert.Equal(t, ez, ex.Cross(ey))
	assert.Equal(t, ex, ey.Cross(ez))
	assert.Equal(t, ey, ez.Cross(ex))
	assert.Equal(t, ez.Neg(), ey.Cross(ex))

	v := array.Of(3.0, -7.0, 2.5)
	assert.Equal(t, array.New[float64](3), v.Cross(v))

	assert.Equal(t, array.Of(-3, 6, -3), array.Of(1, 2, 3).Cross(array.Of(4, 5, 6)))
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, array.Of(3, 4).Magnitude())
	assert.Equal(t, 25.0, array.Of(3, 4).MagnitudeSq())
	assert.Equal(t, 5.0, array.DistanceBetween(array.Of(10, 10, 0), array.Of(7, 6, 0)))
	assert.Equal(t, 25.0, array.DistanceBetweenSq(array.Of(10, 10, 0), array.Of(7, 6, 0)))

	// int8 squares would overflow in the element type.
	big := array.Of[int8](100, 100)
	assert.Equal(t, 20000.0, big.MagnitudeSq())
}

func TestSetAndAddIndex(t *testing.T) {
	a := array.Of(1, 2, 3)

	c := a.CopySet(1, 9)
	assert.Equal(t, array.Of(1, 9, 3), c)
	assert.Equal(t, array.Of(1, 2, 3), a)

	c = a.CopyAddIndex(2, 10)
	assert.Equal(t, array.Of(1, 2, 13), c)
	assert.Equal(t, array.Of(1, 2, 3), a)

	a.Set(0, 4).AddIndex(0, 1)
	assert.Equal(t, array.Of(5, 2, 3), a)
}

func TestAsType(t *testing.T) {
	f := array.Of(1.9, -2.5, 3.0, 4.2)
	assert.Equal(t, array.Of(1, -2, 3, 4), array.AsType[int](f))
	assert.Equal(t, array.Of[float32](1, 2, 3, 4, 5), array.AsType[float32](array.Of(1, 2, 3, 4, 5)))
}

func TestContains(t *testing.T) {
	a := array.Of(2, 4, 8)
	assert.True(t, a.Contains(4))
	assert.False(t, a.Contains(5))
}

func TestPowAndAbs(t *testing.T) {
	assert.Equal(t, array.Of(1.0, 4.0, 9.0), array.Pow(array.Of(1.0, -2.0, 3.0), 2))
	assert.Equal(t, array.Of(8, 27), array.Pow(array.Of(2, 3), 3))
	assert.Equal(t, array.Of(1.0, 2.0, 0.0), array.Abs(array.Of(-1.0, 2.0, 0.0)))
	assert.Equal(t, array.Of(5, 7), array.Abs(array.Of(-5, 7)))
}

func TestElementwiseMinMax(t *testing.T) {
	a1 := array.Of(1, 2, 3, 4, 5.0)
	a2 := array.Of(0.5, 2, 5, -1, 10)

	assert.Equal(t, array.Of(1, 2, 5, 4, 10.0), array.ElementwiseMax(a1, a2))
	assert.Equal(t, array.Of(0.5, 2, 3, -1, 5), array.ElementwiseMin(a1, a2))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, array.IsFinite(array.Of(1.0, 2.0)))
	assert.False(t, array.IsFinite(array.Of(1.0, math.NaN())))
	assert.False(t, array.IsFinite(array.Of(math.Inf(-1))))
	assert.True(t, array.IsFinite(array.Of(1, 2)))
}

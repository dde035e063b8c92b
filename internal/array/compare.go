package array

func compareArrays[T Number](op string, a, b Array[T], f func(x, y T) bool) Mask {
	mustMatch(op, len(a), len(b))
	out := make(Mask, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return out
}

func compareScalar[T Number](a Array[T], s T, f func(x, y T) bool) Mask {
	out := make(Mask, len(a))
	for i := range a {
		out[i] = f(a[i], s)
	}
	return out
}

func lt[T Number](x, y T) bool { return x < y }
func le[T Number](x, y T) bool { return x <= y }
func gt[T Number](x, y T) bool { return x > y }
func ge[T Number](x, y T) bool { return x >= y }
func eq[T Number](x, y T) bool { return x == y }
func ne[T Number](x, y T) bool { return x != y }

func (a Array[T]) Lt(b Array[T]) Mask { return compareArrays("Lt", a, b, lt[T]) }
func (a Array[T]) Le(b Array[T]) Mask { return compareArrays("Le", a, b, le[T]) }
func (a Array[T]) Gt(b Array[T]) Mask { return compareArrays("Gt", a, b, gt[T]) }
func (a Array[T]) Ge(b Array[T]) Mask { return compareArrays("Ge", a, b, ge[T]) }
func (a Array[T]) Eq(b Array[T]) Mask { return compareArrays("Eq", a, b, eq[T]) }
func (a Array[T]) Ne(b Array[T]) Mask { return compareArrays("Ne", a, b, ne[T]) }

func (a Array[T]) LtScalar(s T) Mask { return compareScalar(a, s, lt[T]) }
func (a Array[T]) LeScalar(s T) Mask { return compareScalar(a, s, le[T]) }
func (a Array[T]) GtScalar(s T) Mask { return compareScalar(a, s, gt[T]) }
func (a Array[T]) GeScalar(s T) Mask { return compareScalar(a, s, ge[T]) }
func (a Array[T]) EqScalar(s T) Mask { return compareScalar(a, s, eq[T]) }
func (a Array[T]) NeScalar(s T) Mask { return compareScalar(a, s, ne[T]) }

// ScalarLt computes s < a elementwise. The remaining Scalar* comparisons
// follow the same operand order.
func ScalarLt[T Number](s T, a Array[T]) Mask { return a.GtScalar(s) }
func ScalarLe[T Number](s T, a Array[T]) Mask { return a.GeScalar(s) }
func ScalarGt[T Number](s T, a Array[T]) Mask { return a.LtScalar(s) }
func ScalarGe[T Number](s T, a Array[T]) Mask { return a.LeScalar(s) }
func ScalarEq[T Number](s T, a Array[T]) Mask { return a.EqScalar(s) }
func ScalarNe[T Number](s T, a Array[T]) Mask { return a.NeScalar(s) }

package fluid_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/fluid"
)

type vec = array.Array[float64]

func v3(x, y, z float64) vec { return array.Of(x, y, z) }

func expectZero(u vec, tol float64) {
	GinkgoHelper()
	for i, c := range u {
		Expect(math.Abs(c)).To(BeNumerically("<", tol), "component %d of %v", i, u)
	}
}

var _ = Describe("StokesDrag", func() {
	It("is 6*pi*mu*a*v", func() {
		Expect(array.DistanceBetween(fluid.StokesDrag(v3(-1, 0, 0), 1/math.Pi, 1), v3(-6, 0, 0))).To(BeNumerically("<", 1e-10))
		Expect(array.DistanceBetween(fluid.StokesDrag(v3(3, 2, 1), 1/math.Pi, 1), v3(18, 12, 6))).To(BeNumerically("<", 1e-10))
	})
})

var _ = Describe("TranslatingFlowAt", func() {
	const z = 10.0
	sphere := v3(0, 0, z)

	It("returns the unperturbed velocity for a zero radius", func() {
		u := v3(1, 4, -13)
		Expect(fluid.TranslatingFlowAt(v3(1, 1, 1), sphere, u, 0)).To(Equal(u))
	})

	It("is symmetric about an x translation axis", func() {
		u := v3(1, 0, 0)
		above := fluid.TranslatingFlowAt(v3(-10, 0, z+5), sphere, u, 1)
		below := fluid.TranslatingFlowAt(v3(-10, 0, z-5), sphere, u, 1)
		middle := fluid.TranslatingFlowAt(v3(-10, 0, z), sphere, u, 1)

		Expect(above[0]).To(Equal(below[0]))
		Expect(above[1]).To(BeNumerically("==", -below[1]))
		Expect(above[2]).To(BeNumerically("==", -below[2]))
		Expect(middle[1]).To(BeNumerically("==", 0))
		Expect(middle[2]).To(BeNumerically("==", 0))
	})

	It("is symmetric about a y translation axis", func() {
		u := v3(0, 1, 0)
		above := fluid.TranslatingFlowAt(v3(5, -10, z+5), sphere, u, 1)
		below := fluid.TranslatingFlowAt(v3(-5, -10, z-5), sphere, u, 1)
		middle := fluid.TranslatingFlowAt(v3(0, -10, z), sphere, u, 1)

		Expect(above[0]).To(BeNumerically("==", -below[0]))
		Expect(above[1]).To(Equal(below[1]))
		Expect(above[2]).To(BeNumerically("==", -below[2]))
		Expect(middle[0]).To(BeNumerically("==", 0))
		Expect(middle[2]).To(BeNumerically("==", 0))
	})

	It("satisfies no-slip on the sphere surface", func() {
		u := v3(0, 1, 0)
		for axis := 0; axis < 3; axis++ {
			for _, sign := range []float64{1, -1} {
				p := sphere.CopyAddIndex(axis, sign)
				expectZero(fluid.TranslatingFlowAt(p, sphere, u, 1), 1e-12)
			}
		}
	})

	It("approaches the ambient velocity far away", func() {
		u := v3(2, -1, 0.5)
		far := fluid.TranslatingFlowAt(v3(1e6, 0, z), sphere, u, 1)
		Expect(array.DistanceBetween(far, u)).To(BeNumerically("<", 1e-5))
	})

	It("is divergence free outside the sphere", func() {
		u := v3(1, 0.3, -0.2)
		field := func(p vec) vec { return fluid.TranslatingFlowAt(p, sphere, u, 1) }
		Expect(fluid.DivergenceStep(field, v3(2, -1, z+1.5), 1e-5)).To(BeNumerically("~", 0, 1e-6))
	})
})

var _ = Describe("ShearFlowAt", func() {
	sphere := v3(0, 0, 0)

	It("returns the zero vector inside the sphere", func() {
		Expect(fluid.ShearFlowAt(v3(0.1, 0.2, 0.3), sphere, 1, 2)).To(Equal(v3(0, 0, 0)))
	})

	It("vanishes everywhere for a zero shear rate", func() {
		expectZero(fluid.ShearFlowAt(v3(3, -2, 1.5), sphere, 1, 0), 1e-15)
	})

	It("has no y component in the shear plane", func() {
		u := fluid.ShearFlowAt(v3(2, 0, 3), sphere, 1, 1.5)
		Expect(u[1]).To(BeNumerically("~", 0, 1e-15))
	})

	It("is odd under inversion through the sphere centre", func() {
		p := v3(1.3, 0.7, 2.1)
		plus := fluid.ShearFlowAt(p, sphere, 0.5, 1)
		minus := fluid.ShearFlowAt(p.Neg(), sphere, 0.5, 1)
		Expect(array.DistanceBetween(plus, minus.Neg())).To(BeNumerically("<", 1e-12))
	})
})

var _ = Describe("Blake kernels", func() {
	const viscosity = math.Pi

	It("satisfies no-slip on the wall of a box", func() {
		box := bbox.New(-100, 100, -100, 100, 0, 200)
		sphere := v3(0, 0, 10)

		expectZero(fluid.BlakeFlowInBox(v3(-10, 0, 0), sphere, v3(-1, 0, 0), box, viscosity), 1e-12)
		expectZero(fluid.BlakeFlowInBox(v3(3, -8, 0), sphere, v3(-1, 0, 0), box, viscosity), 1e-12)
		expectZero(fluid.BlakeFlowInBox(v3(3, -8, 0), sphere, v3(-1, 5, 0), box, viscosity), 1e-12)
	})

	DescribeTable("the tensor vanishes on a shifted wall",
		func(zMin float64) {
			sphere := v3(1, 2, zMin+4)
			g := fluid.BlakeTensorAt(v3(-3, 5, zMin), sphere, zMin, viscosity, true)
			for _, c := range g.ToFlat() {
				Expect(math.Abs(c)).To(BeNumerically("<", 1e-12))
			}
			expectZero(fluid.BlakeFlowAt(v3(2, 2, zMin), sphere, v3(0.5, -1, 2), zMin, viscosity, true), 1e-12)
		},
		Entry("floor at zero", 0.0),
		Entry("floor above zero", 5.0),
		Entry("floor below zero", -3.0),
	)

	It("contracts the tensor with the force", func() {
		pos, sphere, force := v3(1, -2, 7), v3(0.5, 0.5, 3), v3(1, 2, -1)
		g := fluid.BlakeTensorAt(pos, sphere, 0, viscosity, true)
		flow := fluid.BlakeFlowAt(pos, sphere, force, 0, viscosity, true)

		for i := 0; i < 3; i++ {
			var want float64
			for j := 0; j < 3; j++ {
				want += g.Get(i, j) * force[j]
			}
			Expect(flow[i]).To(BeNumerically("~", want, 1e-15))
		}
	})

	It("splits into a direct Stokeslet and a wall correction", func() {
		pos, sphere, force := v3(1, -2, 7), v3(0.5, 0.5, 3), v3(1, 2, -1)
		full := fluid.BlakeFlowAt(pos, sphere, force, 0, viscosity, true)
		wall := fluid.BlakeFlowAt(pos, sphere, force, 0, viscosity, false)

		x := pos.Sub(sphere)
		r := x.Magnitude()
		pre := 1 / (8 * math.Pi * viscosity)
		direct := force.DivScalar(r).Add(x.MulScalar(x.Dot(force) / (r * r * r))).MulScalar(pre)

		Expect(array.DistanceBetween(full.Sub(wall), direct)).To(BeNumerically("<", 1e-14))
	})
})

var _ = Describe("Divergence", func() {
	It("is zero for a solenoidal linear field", func() {
		f := func(p vec) vec { return v3(p[0], p[1], -2*p[2]) }
		Expect(fluid.Divergence(f, v3(1, 2, 3))).To(BeNumerically("~", 0, 1e-3))
	})

	It("recovers the trace of a linear field", func() {
		f := func(p vec) vec { return v3(2*p[0], 3*p[1], p[2]) }
		Expect(fluid.Divergence(f, v3(1, 2, 3))).To(BeNumerically("~", 6, 1e-3))
		Expect(fluid.DivergenceStep(f, v3(-4, 0.5, 9), 1e-3)).To(BeNumerically("~", 6, 1e-9))
	})
})

var _ = Describe("SampleXZ", func() {
	It("samples cell centres and tracks the peak speed", func() {
		box := bbox.New(0, 4, -1, 1, 0, 2)
		f := func(p vec) vec { return v3(p[0], 0, p[2]) }

		g := fluid.SampleXZ(f, box, 0.25, 4, 2)
		Expect(g.Xs).To(Equal([]float64{0.5, 1.5, 2.5, 3.5}))
		Expect(g.Zs).To(Equal([]float64{0.5, 1.5}))
		Expect(g.U).To(HaveLen(2))
		Expect(g.U[1]).To(HaveLen(4))
		Expect(g.U[1][2]).To(Equal(v3(2.5, 0, 1.5)))
		Expect(g.Speed(3, 1)).To(BeNumerically("~", math.Hypot(3.5, 1.5), 1e-15))
		Expect(g.Max).To(BeNumerically("~", math.Hypot(3.5, 1.5), 1e-15))
	})

	It("skips non-finite samples when tracking the peak", func() {
		box := bbox.New(-1, 1, -1, 1, -1, 1)
		sphere := v3(0.5, 0, 0.5)
		f := func(p vec) vec { return fluid.TranslatingFlowAt(p, sphere, v3(1, 0, 0), 0.1) }

		g := fluid.SampleXZ(f, box, 0, 2, 2)
		Expect(math.IsNaN(g.Speed(1, 1))).To(BeTrue())
		Expect(math.IsInf(g.Max, 0) || math.IsNaN(g.Max)).To(BeFalse())
	})
})

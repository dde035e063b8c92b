package fluid

import (
	"math"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/physconst"
	"github.com/san-kum/stokeskit/internal/tensor"
)

// DefaultDivergenceStep is the finite-difference width used by Divergence.
const DefaultDivergenceStep = 1e-10

// Field is a velocity field evaluated at a point.
type Field func(pos array.Array[float64]) array.Array[float64]

type vec = array.Array[float64]

// StokesDrag returns 6*pi*mu*a*v.
func StokesDrag(velocity vec, viscosity, radius float64) vec {
	return velocity.MulScalar(6 * physconst.Pi * viscosity * radius)
}

// TranslatingFlowAt is the lab-frame flow at position around a sphere of
// the given radius moving through quiescent fluid with velocity u, returned
// with u added so that the result is zero on the sphere surface. A zero
// radius returns u unchanged.
func TranslatingFlowAt(position, sphere, u vec, radius float64) vec {
	x := position.Sub(sphere)
	r := x.Magnitude()
	r3 := r * r * r
	r5 := r3 * r * r
	a := radius
	a3 := a * a * a

	flow := array.New[float64](3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := float64(array.Delta(i, j))
			flow[i] -= 0.75 * a * u[j] * d / r
			flow[i] -= 0.75 * a * u[j] * x[i] * x[j] / r3
			flow[i] -= 0.75 * a3 * u[j] * d / (3 * r3)
			flow[i] += 0.75 * a3 * u[j] * x[i] * x[j] / r5
		}
	}
	return flow.AddInPlace(u)
}

// shearStrain is the symmetric part of the velocity gradient of (rate*z, 0, 0).
func shearStrain(rate float64) *tensor.Tensor[float64] {
	e := tensor.Must(tensor.New[float64](3, 3))
	e.SetUnchecked(0, 2, rate/2)
	e.SetUnchecked(2, 0, rate/2)
	return e
}

// shearRotation is half the vorticity of (rate*z, 0, 0).
func shearRotation(rate float64) vec {
	return array.Of(0, rate/2, 0)
}

// ShearFlowAt is the flow around a sphere held in the ambient shear flow
// (rate*z, 0, 0). Points inside the sphere get the zero vector.
func ShearFlowAt(position, sphere vec, radius, rate float64) vec {
	x := position.Sub(sphere)
	r := x.Magnitude()
	if r < radius {
		return array.New[float64](3)
	}
	a := radius
	e := shearStrain(rate)

	flow := array.New[float64](3)
	for i := 0; i < 3; i++ {
		var stresslet, decay, quad float64
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				ejk := e.Get(j, k)
				if ejk == 0 {
					continue
				}
				stresslet -= 2.5 * math.Pow(a, 3) / math.Pow(r, 5) * x[i] * x[j] * x[k] * ejk
				factor := 0.5 * math.Pow(a/r, 5) * ejk
				decay -= factor * (float64(array.Delta(i, j))*x[k] + float64(array.Delta(i, k))*x[j])
				quad += factor * 5 * x[i] * x[j] * x[k] / (r * r)
			}
		}
		flow[i] = stresslet + decay + quad
	}

	rot := shearRotation(rate).Cross(x).MulScalar(math.Pow(a/r, 3))
	flow.SubInPlace(rot)

	ambient := array.Of(rate*position[2], 0, 0)
	return flow.AddInPlace(TranslatingFlowAt(position, sphere, ambient, radius))
}

// BlakeTensorAt returns the 3x3 Green's function G for a point force at
// sphere near the no-slip wall z = zMin, so that the flow at position is
// G*F. With includeDirect false the free-space Stokeslet is left out and
// only the wall correction remains.
//
// Distances to the image are measured from the wall: the image sits at the
// mirror of sphere through z = zMin and the derivative terms scale with
// the sphere's height above the wall.
func BlakeTensorAt(position, sphere vec, zMin, viscosity float64, includeDirect bool) *tensor.Tensor[float64] {
	p := position.CopyAddIndex(2, -zMin)
	s := sphere.CopyAddIndex(2, -zMin)
	h := s[2]

	r := p.Sub(s)
	image := array.Of(s[0], s[1], -s[2])
	R := p.Sub(image)

	rMag := r.Magnitude()
	RMag := R.Magnitude()
	r3 := rMag * rMag * rMag
	R3 := RMag * RMag * RMag
	R5 := R3 * RMag * RMag

	pre := 1 / (8 * physconst.Pi * viscosity)

	g := tensor.Must(tensor.New[float64](3, 3))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dij := float64(array.Delta(i, j))
			di2 := float64(array.Delta(i, 2))
			dj2 := float64(array.Delta(j, 2))

			var v float64
			if includeDirect {
				v += dij/rMag + r[i]*r[j]/r3
			}
			v -= dij/RMag + R[i]*R[j]/R3

			sign := 1.0
			if j == 2 {
				sign = -1
			}
			var dipole float64
			dipole += dij * h / R3
			dipole -= 3 * R[i] * R[j] * h / R5
			dipole += R[j] * di2 / R3
			dipole -= R[i] * dj2 / R3
			dipole -= dij * R[2] / R3
			dipole += 3 * R[i] * R[2] * R[j] / R5
			v += 2 * sign * h * dipole

			g.SetUnchecked(i, j, pre*v)
		}
	}
	return g
}

// BlakeFlowAt contracts BlakeTensorAt with force.
func BlakeFlowAt(position, sphere, force vec, zMin, viscosity float64, includeDirect bool) vec {
	return tensor.MulVec(BlakeTensorAt(position, sphere, zMin, viscosity, includeDirect), force)
}

// BlakeFlowInBox is BlakeFlowAt with the wall on the floor of box.
func BlakeFlowInBox(position, sphere, force vec, box bbox.Box, viscosity float64) vec {
	return BlakeFlowAt(position, sphere, force, box.ZMin(), viscosity, true)
}

// Divergence estimates div f at position with DefaultDivergenceStep.
func Divergence(f Field, position vec) float64 {
	return DivergenceStep(f, position, DefaultDivergenceStep)
}

// DivergenceStep estimates div f at position by central differences of
// width dx along each axis.
func DivergenceStep(f Field, position vec, dx float64) float64 {
	var div float64
	for i := 0; i < 3; i++ {
		plus := f(position.CopyAddIndex(i, dx/2))
		minus := f(position.CopyAddIndex(i, -dx/2))
		div += (plus[i] - minus[i]) / dx
	}
	return div
}

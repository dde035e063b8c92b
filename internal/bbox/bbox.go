// Package bbox implements an axis-aligned 3D box used as the simulation
// domain: containment, elastic wall reflection, and random sampling of
// interior and surface points.
package bbox

import (
	"fmt"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/randutil"
)

// Box is immutable once built; lower <= upper holds on every axis.
type Box struct {
	lower array.Array[float64]
	upper array.Array[float64]
}

// New builds a box from explicit per-axis extents.
func New(xmin, xmax, ymin, ymax, zmin, zmax float64) Box {
	return FromCorners(array.Of(xmin, ymin, zmin), array.Of(xmax, ymax, zmax))
}

// FromDimensions builds a box centred on the origin spanning [-d/2, d/2].
func FromDimensions(x, y, z float64) Box {
	return New(-x/2, x/2, -y/2, y/2, -z/2, z/2)
}

// FromCorners builds a box from two opposite corners in either order.
func FromCorners(c1, c2 array.Array[float64]) Box {
	return Box{
		lower: array.ElementwiseMin(c1, c2),
		upper: array.ElementwiseMax(c1, c2),
	}
}

// InBounds reports whether p lies in the box, faces included.
func (b Box) InBounds(p array.Array[float64]) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.lower[i] || p[i] > b.upper[i] {
			return false
		}
	}
	return true
}

// Reflect returns a copy of p reflected back through any violated face.
func (b Box) Reflect(p array.Array[float64]) array.Array[float64] {
	return b.ReflectInPlace(p.Clone())
}

// ReflectInPlace mirrors each out-of-range coordinate about the face it
// crossed, once. A coordinate more than one box width outside stays outside.
func (b Box) ReflectInPlace(p array.Array[float64]) array.Array[float64] {
	for i := 0; i < 3; i++ {
		p[i] = b.reflectAxis(p[i], i)
	}
	return p
}

func (b Box) ReflectX(x float64) float64 { return b.reflectAxis(x, 0) }
func (b Box) ReflectY(y float64) float64 { return b.reflectAxis(y, 1) }
func (b Box) ReflectZ(z float64) float64 { return b.reflectAxis(z, 2) }

func (b Box) reflectAxis(c float64, axis int) float64 {
	switch {
	case c < b.lower[axis]:
		return 2*b.lower[axis] - c
	case c > b.upper[axis]:
		return 2*b.upper[axis] - c
	default:
		return c
	}
}

// RandomPointInBounds draws each coordinate uniformly over its extent.
func (b Box) RandomPointInBounds(src randutil.Source) array.Array[float64] {
	p := array.New[float64](3)
	for i := 0; i < 3; i++ {
		p[i] = randutil.Uniform(src, b.lower[i], b.upper[i])
	}
	return p
}

// RandomPointOnSurface picks a face with probability proportional to its
// area and returns a uniform interior point projected onto that face.
func (b Box) RandomPointOnSurface(src randutil.Source) array.Array[float64] {
	areas := []float64{
		b.XSurface(), b.XSurface(),
		b.YSurface(), b.YSurface(),
		b.ZSurface(), b.ZSurface(),
	}
	i := randutil.WeightedIndex(src, areas)
	if i >= len(areas) {
		// Zero total area: every face is the same point set.
		i = 0
	}
	axis, upper := SurfaceFace(i)

	p := b.RandomPointInBounds(src)
	if upper {
		return p.Set(axis, b.upper[axis])
	}
	return p.Set(axis, b.lower[axis])
}

// SurfaceFace decodes a face index in [0, 6) drawn by RandomPointOnSurface.
// Faces 2 and 3 both land on the lower y face and face 4 on the upper z
// face; the per-axis probabilities are still area weighted.
func SurfaceFace(i int) (axis int, upper bool) {
	return i / 2, i%3 == 1
}

// Volume is the product of the three extents.
func (b Box) Volume() float64 {
	return b.upper.Sub(b.lower).Prod()
}

// Lower returns a copy of the lower corner.
func (b Box) Lower() array.Array[float64] { return b.lower.Clone() }

// Upper returns a copy of the upper corner.
func (b Box) Upper() array.Array[float64] { return b.upper.Clone() }

func (b Box) XMin() float64 { return b.lower[0] }
func (b Box) XMax() float64 { return b.upper[0] }
func (b Box) YMin() float64 { return b.lower[1] }
func (b Box) YMax() float64 { return b.upper[1] }
func (b Box) ZMin() float64 { return b.lower[2] }
func (b Box) ZMax() float64 { return b.upper[2] }

// Size is the extent along axis i.
func (b Box) Size(i int) float64 { return b.upper[i] - b.lower[i] }

func (b Box) XSize() float64 { return b.Size(0) }
func (b Box) YSize() float64 { return b.Size(1) }
func (b Box) ZSize() float64 { return b.Size(2) }

// XSurface is the area of one face with an x normal.
func (b Box) XSurface() float64 { return b.YSize() * b.ZSize() }
func (b Box) YSurface() float64 { return b.ZSize() * b.XSize() }
func (b Box) ZSurface() float64 { return b.XSize() * b.YSize() }

// Center is the midpoint of the two corners.
func (b Box) Center() array.Array[float64] {
	return b.lower.Add(b.upper).DivScalar(2)
}

// Equal compares bounds exactly.
func (b Box) Equal(o Box) bool {
	return b.lower.Eq(o.lower).All() && b.upper.Eq(o.upper).All()
}

func (b Box) String() string {
	return fmt.Sprintf("Box[%v -> %v]", b.lower, b.upper)
}

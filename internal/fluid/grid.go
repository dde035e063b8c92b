package fluid

import (
	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
)

// Grid is a field sampled at cell centres of an x-z slice of a box.
type Grid struct {
	Y   float64
	Xs  []float64
	Zs  []float64
	U   [][]array.Array[float64] // U[iz][ix]
	Max float64                  // largest finite speed on the grid
}

// SampleXZ evaluates f on an nx by nz grid in the plane at height y.
func SampleXZ(f Field, box bbox.Box, y float64, nx, nz int) *Grid {
	g := &Grid{
		Y:  y,
		Xs: centres(box.XMin(), box.XSize(), nx),
		Zs: centres(box.ZMin(), box.ZSize(), nz),
		U:  make([][]array.Array[float64], nz),
	}
	for iz, z := range g.Zs {
		g.U[iz] = make([]array.Array[float64], nx)
		for ix, x := range g.Xs {
			u := f(array.Of(x, y, z))
			g.U[iz][ix] = u
			if s := u.Magnitude(); array.IsFinite(u) && s > g.Max {
				g.Max = s
			}
		}
	}
	return g
}

func centres(lo, size float64, n int) []float64 {
	out := make([]float64, n)
	step := size / float64(n)
	for i := range out {
		out[i] = lo + (float64(i)+0.5)*step
	}
	return out
}

// Speed is |u| at a grid node.
func (g *Grid) Speed(ix, iz int) float64 {
	return g.U[iz][ix].Magnitude()
}

// Package export renders tracer runs and flow slices as SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/tracer"
)

const background = "#0a0a0a"

// Palette cycles over particle paths.
var Palette = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff66cc", "#aa88ff", "#ff8844"}

// frame maps the x-z face of a box onto a width by height image, z up.
type frame struct {
	box           bbox.Box
	width, height int
}

func (f frame) point(x, z float64) (float64, float64) {
	px := (x - f.box.XMin()) / f.box.XSize() * float64(f.width)
	py := float64(f.height) - (z-f.box.ZMin())/f.box.ZSize()*float64(f.height)
	return px, py
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// TrajectoryToSVG draws the x-z projection of up to maxPaths particle
// paths inside box. maxPaths <= 0 draws every particle.
func TrajectoryToSVG(result *tracer.Result, box bbox.Box, width, height, maxPaths int) string {
	if result == nil || len(result.Positions) < 2 {
		return ""
	}
	n := len(result.Positions[0])
	if maxPaths > 0 && maxPaths < n {
		n = maxPaths
	}
	fr := frame{box: box, width: width, height: height}

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="none" stroke="#444466" stroke-width="2"/>` + "\n")

	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.8" d="`, Palette[i%len(Palette)])
		for k, p := range result.Path(i) {
			x, y := fr.point(p[0], p[2])
			if k == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		end := result.Final()[i]
		x, y := fr.point(end[0], end[2])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>`+"\n", x, y, Palette[i%len(Palette)])
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FieldSliceToSVG draws one arrow per grid node, scaled so the fastest
// node spans one cell, coloured from blue (slow) to red (fast). Nodes with
// a non-finite velocity are marked with a grey dot.
func FieldSliceToSVG(g *fluid.Grid, box bbox.Box, width, height int) string {
	if g == nil || len(g.Xs) == 0 || len(g.Zs) == 0 {
		return ""
	}
	fr := frame{box: box, width: width, height: height}
	cell := math.Min(float64(width)/float64(len(g.Xs)), float64(height)/float64(len(g.Zs)))

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">y = %g, max |u| = %g</text>`+"\n", g.Y, g.Max)

	for iz, z := range g.Zs {
		for ix, x := range g.Xs {
			u := g.U[iz][ix]
			cx, cy := fr.point(x, z)
			speed := g.Speed(ix, iz)
			if math.IsNaN(speed) || math.IsInf(speed, 0) {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="1.5" fill="#666688"/>`+"\n", cx, cy)
				continue
			}

			t := 0.0
			if g.Max > 0 {
				t = speed / g.Max
			}
			// Screen y grows downwards.
			dx, dy := 0.0, 0.0
			if speed > 0 {
				dx = u[0] / g.Max * cell * 0.9
				dy = -u[2] / g.Max * cell * 0.9
			}
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.2"/>`+"\n",
				cx-dx/2, cy-dy/2, cx+dx/2, cy+dy/2, heat(t))
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="1.2" fill="%s"/>`+"\n", cx+dx/2, cy+dy/2, heat(t))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// heat maps t in [0, 1] onto a blue to red ramp.
func heat(t float64) string {
	t = math.Max(0, math.Min(1, t))
	r := int(255 * t)
	b := int(255 * (1 - t))
	g := int(160 * (1 - math.Abs(2*t-1)))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

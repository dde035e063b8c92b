package viz

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stokeskit/internal/array"
	"github.com/san-kum/stokeskit/internal/bbox"
	"github.com/san-kum/stokeskit/internal/config"
	"github.com/san-kum/stokeskit/internal/experiment"
	"github.com/san-kum/stokeskit/internal/fluid"
	"github.com/san-kum/stokeskit/internal/tracer"
)

const (
	paneCols = 60
	paneRows = 20

	sliceSteps = 20
	maxTrails  = 24
	trailLen   = 40

	minGain = 1.0 / 64
	maxGain = 64.0
)

// shades runs from still to fastest.
const shades = " .:-=+*#%@"

type mode int

const (
	modeField mode = iota
	modeTracers
)

var headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Viewer is the Bubble Tea model for the slice viewer.
type Viewer struct {
	cfg      *config.Config
	registry *experiment.Registry
	box      bbox.Box

	flows []string
	flow  int
	grid  *fluid.Grid
	y     float64
	gain  float64

	mode    mode
	replay  *tracer.Result
	frame   int
	playing bool

	theme         Theme
	canvas        *Canvas
	width, height int
	err           error
}

// NewViewer opens on cfg's flow at the mid-plane in y. replay may be nil, in
// which case only the field pane is available.
func NewViewer(cfg *config.Config, registry *experiment.Registry, replay *tracer.Result) (Viewer, error) {
	flows := registry.ListFields()
	idx := slices.Index(flows, cfg.Flow)
	if idx < 0 {
		return Viewer{}, fmt.Errorf("%w: %s", experiment.ErrUnknownFlow, cfg.Flow)
	}

	box := cfg.Domain()
	v := Viewer{
		cfg:      cfg,
		registry: registry,
		box:      box,
		flows:    flows,
		flow:     idx,
		y:        box.Center()[1],
		gain:     1,
		replay:   replay,
		playing:  true,
		theme:    CurrentTheme,
		canvas:   NewCanvas(paneCols, paneRows),
		width:    paneCols + 46,
		height:   paneRows + 4,
	}
	if replay != nil && len(replay.Times) > 0 {
		v.mode = modeTracers
	}
	v.resample()
	return v, v.err
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(v Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}

func (v *Viewer) resample() {
	field, err := v.registry.GetField(v.flows[v.flow], v.cfg)
	if err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.grid = fluid.SampleXZ(field, v.box, v.y, paneCols, paneRows)
}

func (v Viewer) Init() tea.Cmd { return tick() }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case TickMsg:
		v.advance()
		return v, tick()
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return v, tea.Quit
	case "up", "k":
		v.moveSlice(1)
	case "down", "j":
		v.moveSlice(-1)
	case "tab":
		v.flow = (v.flow + 1) % len(v.flows)
		v.resample()
	case "+", "=":
		v.gain = min(maxGain, v.gain*1.5)
	case "-", "_":
		v.gain = max(minGain, v.gain/1.5)
	case "m":
		if v.frames() > 0 {
			v.mode = 1 - v.mode
		}
	case " ":
		v.playing = !v.playing
	case "[":
		v.playing = false
		v.frame = max(0, v.frame-1)
	case "]":
		v.playing = false
		v.frame = min(max(v.frames()-1, 0), v.frame+1)
	case "t":
		v.theme = NextTheme(v.theme)
	}
	return v, nil
}

func (v *Viewer) moveSlice(dir int) {
	step := v.box.YSize() / sliceSteps
	v.y = math.Max(v.box.YMin(), math.Min(v.box.YMax(), v.y+float64(dir)*step))
	v.resample()
}

func (v *Viewer) advance() {
	if v.mode != modeTracers || !v.playing {
		return
	}
	if v.frame+1 >= v.frames() {
		v.playing = false
		return
	}
	v.frame++
}

func (v Viewer) frames() int {
	if v.replay == nil {
		return 0
	}
	return len(v.replay.Times)
}

func (v Viewer) View() string {
	var pane string
	if v.mode == modeTracers {
		pane = v.drawTracers()
	} else {
		pane = v.drawField()
	}

	canvasView := canvasStyle.Render(pane)
	statsView := statsStyle.Render(v.stats())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// shade maps a speed to its ramp character; non-finite speeds show as '?'.
func shade(speed, peak, gain float64) rune {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return '?'
	}
	if peak <= 0 {
		return rune(shades[0])
	}
	t := math.Min(1, gain*speed/peak)
	return rune(shades[int(t*float64(len(shades)-1))])
}

func (v Viewer) drawField() string {
	if v.err != nil || v.grid == nil {
		return ""
	}

	var b strings.Builder
	// Highest z on the top row.
	for iz := len(v.grid.Zs) - 1; iz >= 0; iz-- {
		for ix := range v.grid.Xs {
			s := v.grid.Speed(ix, iz)
			r := shade(s, v.grid.Max, v.gain)
			if r == '?' {
				b.WriteString(errStyle.Render("?"))
				continue
			}
			t := 0.0
			if v.grid.Max > 0 {
				t = math.Min(1, v.gain*s/v.grid.Max)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(blend(v.theme.Slow, v.theme.Fast, t)).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// project maps a position to dot coordinates in the x-z plane, z up.
func (v Viewer) project(p array.Array[float64]) (int, int) {
	w, h := v.canvas.Dots()
	x := (p[0] - v.box.XMin()) / v.box.XSize() * float64(w-1)
	z := (v.box.ZMax() - p[2]) / v.box.ZSize() * float64(h-1)
	return int(math.Round(x)), int(math.Round(z))
}

func (v Viewer) drawTracers() string {
	c := v.canvas
	c.Clear()
	w, h := c.Dots()
	c.DrawLine(0, h-1, w-1, h-1)

	if v.frames() == 0 {
		return c.String()
	}
	start := max(0, v.frame-trailLen)
	n := min(maxTrails, len(v.replay.Positions[v.frame]))
	for i := 0; i < n; i++ {
		x0, y0 := v.project(v.replay.Positions[start][i])
		for k := start + 1; k <= v.frame; k++ {
			x1, y1 := v.project(v.replay.Positions[k][i])
			c.DrawLine(x0, y0, x1, y1)
			x0, y0 = x1, y1
		}
	}
	for _, p := range v.replay.Positions[v.frame][n:] {
		c.Set(v.project(p))
	}
	return lipgloss.NewStyle().Foreground(v.theme.Secondary).Render(c.String())
}

func (v Viewer) row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func (v Viewer) stats() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText("STOKESKIT", v.theme.Primary, v.theme.Secondary)) + "\n")

	name := v.flows[v.flow]
	s.WriteString(v.row("Flow", name))
	s.WriteString(labelStyle.Render("") + helpStyle.UnsetMarginTop().Render(v.registry.Describe(name)) + "\n\n")

	if v.err != nil {
		s.WriteString(errStyle.Render(v.err.Error()) + "\n")
	}

	if v.mode == modeTracers && v.frames() > 0 {
		frames := v.frames()
		s.WriteString(v.row("Time", fmt.Sprintf("%.4gs", v.replay.Times[v.frame])))
		s.WriteString(v.row("Frame", fmt.Sprintf("%d/%d", v.frame+1, frames)))
		s.WriteString(labelStyle.Render("") + ProgressBar(float64(v.frame+1)/float64(frames), 24) + "\n")
		s.WriteString(v.row("Particles", fmt.Sprintf("%d", len(v.replay.Positions[v.frame]))))
		s.WriteString(v.row("Bounces", fmt.Sprintf("%d", v.replay.Stats.Reflections)))
		msd := v.replay.MSD(v.frame)
		s.WriteString(v.row("MSD", fmt.Sprintf("%.3g m²", msd[len(msd)-1])))
		s.WriteString(labelStyle.Render("") + Sparkline(msd, 24) + "\n")
		if !v.playing {
			s.WriteString(v.row("Status", "PAUSED"))
		}
	} else if v.grid != nil {
		s.WriteString(v.row("Slice y", fmt.Sprintf("%.3g m", v.y)))
		s.WriteString(v.row("Max |u|", fmt.Sprintf("%.3g m/s", v.grid.Max)))
		s.WriteString(v.row("Contrast", fmt.Sprintf("x%.3g", v.gain)))
		if profile := v.centreProfile(); len(profile) > 1 {
			chart := asciigraph.Plot(profile, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("|u| along z"))
			s.WriteString("\n" + chart + "\n")
		}
	}
	s.WriteString(v.row("Theme", v.theme.Name))

	s.WriteString(helpStyle.Render("─────────────────────\n↑↓:Slice Tab:Flow +/-:Contrast\nM:Pane SP:Pause [ ]:Step T:Theme Q:Quit"))
	return s.String()
}

// centreProfile is |u| up the middle column of the slice, finite values only.
func (v Viewer) centreProfile() []float64 {
	ix := len(v.grid.Xs) / 2
	out := make([]float64, 0, len(v.grid.Zs))
	for iz := range v.grid.Zs {
		if s := v.grid.Speed(ix, iz); !math.IsNaN(s) && !math.IsInf(s, 0) {
			out = append(out, s)
		}
	}
	return out
}

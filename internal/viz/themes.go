package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("viz: unknown theme")

// Theme colors the viewer. Field cells blend from Slow to Fast with speed;
// tracer dots and the header use Primary and Secondary.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Slow      lipgloss.Color
	Fast      lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Slow:      lipgloss.Color("#003366"),
		Fast:      lipgloss.Color("#00ffcc"),
	}

	// Black-body ramp, reads well for boundary layers near the wall.
	ThemeThermal = Theme{
		Name:      "thermal",
		Primary:   lipgloss.Color("#ff6a00"),
		Secondary: lipgloss.Color("#ffd23f"),
		Slow:      lipgloss.Color("#2b0000"),
		Fast:      lipgloss.Color("#fff4b0"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Slow:      lipgloss.Color("#333333"),
		Fast:      lipgloss.Color("#ffffff"),
	}

	CurrentTheme = ThemeOcean

	Themes = []Theme{ThemeOcean, ThemeThermal, ThemeMono}
)

// SetTheme makes the named theme current for new viewers.
func SetTheme(name string) error {
	for _, t := range Themes {
		if t.Name == name {
			CurrentTheme = t
			return nil
		}
	}
	return fmt.Errorf("%w: %s (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

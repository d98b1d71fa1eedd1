package renderer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tierline/internal/renderer/core"
)

// goldenAngle spreads successive tier hues as far apart as possible.
const goldenAngle = 137.50776405

// Theme holds every style the timeline painter uses.
type Theme struct {
	Header   core.Style
	Modified core.Style

	Ruler     core.Style
	RulerTick core.Style

	Gutter       core.Style
	GutterActive core.Style

	Cursor              core.Style
	SelectionBackground core.Color

	StatusMode    core.Style
	StatusLabel   core.Style
	Status        core.Style
	StatusWarning core.Style
	StatusError   core.Style

	// Chroma and Luminance of tier colours in HCL space.
	Chroma    float64
	Luminance float64
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	base := core.DefaultStyle()
	return Theme{
		Header:   base.Bold(),
		Modified: base.WithForeground(core.ColorYellow).Bold(),

		Ruler:     base.Dim(),
		RulerTick: base,

		Gutter:       base,
		GutterActive: base.Reverse().Bold(),

		Cursor:              base.WithForeground(core.ColorRed).Bold(),
		SelectionBackground: core.ColorFromRGB(60, 70, 110),

		StatusMode:    base.WithForeground(core.ColorBlack).WithBackground(core.ColorFromRGB(120, 170, 240)).Bold(),
		StatusLabel:   base.WithForeground(core.ColorBlack).WithBackground(core.ColorFromRGB(140, 210, 140)).Bold(),
		Status:        base,
		StatusWarning: base.WithForeground(core.ColorYellow),
		StatusError:   base.WithForeground(core.ColorRed).Bold(),

		Chroma:    0.45,
		Luminance: 0.55,
	}
}

// TierColor returns the colour of the i-th tier. Hues advance by the
// golden angle so neighbouring tiers never look alike.
func (t Theme) TierColor(i int) core.Color {
	h := math.Mod(float64(i)*goldenAngle, 360)
	return core.ColorFromColorful(colorful.Hcl(h, t.Chroma, t.Luminance))
}

// TierStyle returns the style for annotations on the i-th tier: the tier
// colour as background and a readable foreground.
func (t Theme) TierStyle(i int, selected bool) core.Style {
	bg := t.TierColor(i)
	if selected {
		bg = bg.Lighten(0.35)
	}
	s := core.DefaultStyle().WithBackground(bg).WithForeground(contrast(bg))
	if selected {
		s = s.Bold().Underline()
	}
	return s
}

// PointStyle returns the style for point markers on the i-th tier.
func (t Theme) PointStyle(i int, selected bool) core.Style {
	s := core.NewStyle(t.TierColor(i)).Bold()
	if selected {
		s = s.Reverse()
	}
	return s
}

// contrast picks black or white text for a background.
func contrast(bg core.Color) core.Color {
	c := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return core.ColorBlack
	}
	return core.ColorWhite
}

package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Truncate shortens s to at most width terminal columns, cutting on
// grapheme boundaries and marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// TextWidth returns the number of terminal columns s occupies.
func TextWidth(s string) int {
	return uniseg.StringWidth(s)
}

// FormatTime renders seconds with millisecond precision.
func FormatTime(t float64) string {
	return fmt.Sprintf("%.3fs", t)
}

// tickSteps are the ruler intervals, in seconds, tried from finest.
var tickSteps = []float64{
	0.001, 0.002, 0.005,
	0.01, 0.02, 0.05,
	0.1, 0.2, 0.5,
	1, 2, 5, 10, 15, 30,
	60, 120, 300, 600, 1800, 3600,
}

// TickStep returns the finest ruler step at which ticks are at least
// minCols columns apart.
func TickStep(pixelsPerSecond float64, minCols int) float64 {
	for _, s := range tickSteps {
		if s*pixelsPerSecond >= float64(minCols) {
			return s
		}
	}
	return tickSteps[len(tickSteps)-1]
}

// formatTick labels a ruler tick with as many decimals as step needs.
func formatTick(t, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return fmt.Sprintf("%.*f", decimals, t)
}

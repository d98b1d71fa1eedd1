package viewport

import "math"

// Zoom limits applied throughout the system.
const (
	MinZoom = 0.1
	MaxZoom = 100.0

	// FallbackPixelsPerSecond keeps panes responsive when no duration is known.
	FallbackPixelsPerSecond = 100.0
)

// Mapper converts between timeline seconds and horizontal pixel offsets.
//
// Scroll is expressed in pixels of the zoomed content strip, whose total
// width is Width*Zoom. Every pane shares this convention, so one
// ScrollOffset produces the same alignment everywhere.
//
// Mapper is a value type with no hidden state; all methods are pure.
type Mapper struct {
	Duration     float64 // seconds
	Zoom         float64
	Width        float64 // pixels
	ScrollOffset float64 // pixels into the zoomed content

	// Fallback is used when Duration is not positive. Zero means
	// FallbackPixelsPerSecond.
	Fallback float64
}

// NewMapper creates a mapper, clamping zoom and scroll into range.
func NewMapper(duration, zoom, width, scrollOffset float64) Mapper {
	return Mapper{
		Duration:     duration,
		Zoom:         ClampZoom(zoom),
		Width:        width,
		ScrollOffset: math.Max(0, scrollOffset),
	}
}

// ClampZoom limits a zoom factor to [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) {
		return 1
	}
	return clamp(zoom, MinZoom, MaxZoom)
}

// degenerate reports whether the duration cannot be used as a divisor.
func (m Mapper) degenerate() bool {
	return !(m.Duration > 0) || !(m.Width > 0)
}

// PixelsPerSecond returns the horizontal scale at the current zoom.
func (m Mapper) PixelsPerSecond() float64 {
	if m.degenerate() {
		fb := m.Fallback
		if fb <= 0 {
			fb = FallbackPixelsPerSecond
		}
		return fb * m.zoom()
	}
	return m.Width * m.zoom() / m.Duration
}

func (m Mapper) zoom() float64 {
	if m.Zoom <= 0 {
		return 1
	}
	return m.Zoom
}

// VisibleDuration returns how many seconds fit in the viewport width.
func (m Mapper) VisibleDuration() float64 {
	if m.degenerate() {
		return m.Width / m.PixelsPerSecond()
	}
	return m.Duration / m.zoom()
}

// StartTime returns the time at the left edge of the viewport.
func (m Mapper) StartTime() float64 {
	return m.ScrollOffset / m.PixelsPerSecond()
}

// EndTime returns the time at the right edge of the viewport.
func (m Mapper) EndTime() float64 {
	return m.StartTime() + m.VisibleDuration()
}

// TimeToPixel converts seconds to a pixel offset from the viewport's left edge.
// The result may be negative or exceed Width for times outside the view.
func (m Mapper) TimeToPixel(t float64) float64 {
	return (t - m.StartTime()) * m.PixelsPerSecond()
}

// PixelToTime converts a pixel offset from the viewport's left edge to seconds.
func (m Mapper) PixelToTime(x float64) float64 {
	return m.StartTime() + x/m.PixelsPerSecond()
}

// PixelToTimeClamped converts a pixel offset to seconds clamped to [0, Duration].
func (m Mapper) PixelToTimeClamped(x float64) float64 {
	t := m.PixelToTime(x)
	if m.Duration > 0 {
		return clamp(t, 0, m.Duration)
	}
	return math.Max(0, t)
}

// ContentWidth returns the width of the full zoomed strip in pixels.
func (m Mapper) ContentWidth() float64 {
	if m.degenerate() {
		return m.Width
	}
	return m.Width * m.zoom()
}

// MaxScroll returns the largest valid scroll offset.
func (m Mapper) MaxScroll() float64 {
	return math.Max(0, m.ContentWidth()-m.Width)
}

// IsTimeVisible returns true if t falls within the visible window.
func (m Mapper) IsTimeVisible(t float64) bool {
	return t >= m.StartTime() && t <= m.EndTime()
}

// ScrollForTime returns the scroll offset that places t at fraction
// of the viewport width from the left edge, clamped to the valid range.
func (m Mapper) ScrollForTime(t, fraction float64) float64 {
	offset := t*m.PixelsPerSecond() - fraction*m.Width
	return clamp(offset, 0, m.MaxScroll())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

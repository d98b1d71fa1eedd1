// Package viewport maps timeline seconds onto the horizontal pixel space
// shared by every visual pane (waveform, spectrogram, tier lanes).
//
// Mapper holds the pure conversion functions. Viewport owns the mutable
// zoom, scroll and width state and hands out Mapper snapshots so that all
// panes painting the same frame agree on alignment.
package viewport

import (
	"math"
	"sync"
)

// Limits bounds the zoom factor and configures fallbacks.
type Limits struct {
	MinZoom  float64
	MaxZoom  float64
	Fallback float64 // pixels per second when duration is unknown
}

// DefaultLimits returns the system-wide zoom range.
func DefaultLimits() Limits {
	return Limits{
		MinZoom:  MinZoom,
		MaxZoom:  MaxZoom,
		Fallback: FallbackPixelsPerSecond,
	}
}

// Viewport is the zoom/scroll state of the timeline view.
// It is UI state and is never recorded in annotation history.
type Viewport struct {
	mu sync.RWMutex

	duration float64
	zoom     float64
	width    float64
	scroll   float64

	limits Limits
}

// NewViewport creates a viewport of the given pixel width at zoom 1.
// Width is clamped to a minimum of 1.
func NewViewport(width float64) *Viewport {
	return NewViewportWithLimits(width, DefaultLimits())
}

// NewViewportWithLimits creates a viewport with custom zoom limits.
func NewViewportWithLimits(width float64, limits Limits) *Viewport {
	if limits.MinZoom <= 0 {
		limits.MinZoom = MinZoom
	}
	if limits.MaxZoom < limits.MinZoom {
		limits.MaxZoom = limits.MinZoom
	}
	if limits.Fallback <= 0 {
		limits.Fallback = FallbackPixelsPerSecond
	}
	return &Viewport{
		zoom:   1,
		width:  math.Max(1, width),
		limits: limits,
	}
}

// SetLimits replaces the zoom limits and re-clamps the current zoom.
func (v *Viewport) SetLimits(limits Limits) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if limits.MinZoom <= 0 {
		limits.MinZoom = MinZoom
	}
	if limits.MaxZoom < limits.MinZoom {
		limits.MaxZoom = limits.MinZoom
	}
	if limits.Fallback <= 0 {
		limits.Fallback = FallbackPixelsPerSecond
	}
	v.limits = limits
	v.zoom = clamp(v.zoom, limits.MinZoom, limits.MaxZoom)
	v.clampScroll()
}

// Mapper returns a snapshot of the current mapping.
func (v *Viewport) Mapper() Mapper {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mapper()
}

func (v *Viewport) mapper() Mapper {
	return Mapper{
		Duration:     v.duration,
		Zoom:         v.zoom,
		Width:        v.width,
		ScrollOffset: v.scroll,
		Fallback:     v.limits.Fallback,
	}
}

// Reset sets a new duration and returns to zoom 1 with no scroll.
func (v *Viewport) Reset(duration float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.duration = math.Max(0, duration)
	v.zoom = 1
	v.scroll = 0
}

// SetDuration updates the duration and re-clamps scroll.
func (v *Viewport) SetDuration(duration float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.duration = math.Max(0, duration)
	v.clampScroll()
}

// Duration returns the timeline duration in seconds.
func (v *Viewport) Duration() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.duration
}

// Width returns the viewport width in pixels.
func (v *Viewport) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Resize updates the viewport width, clamped to a minimum of 1.
func (v *Viewport) Resize(width float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = math.Max(1, width)
	v.clampScroll()
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.zoom
}

// Scroll returns the scroll offset in pixels.
func (v *Viewport) Scroll() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scroll
}

// ZoomTo sets the zoom factor, keeping the time at the viewport centre fixed.
func (v *Viewport) ZoomTo(level float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoomAt(level, v.width/2)
}

// ZoomAt sets the zoom factor, keeping the time under pixel x fixed.
func (v *Viewport) ZoomAt(level, x float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoomAt(level, x)
}

func (v *Viewport) zoomAt(level, x float64) {
	if math.IsNaN(level) {
		return
	}
	anchor := v.mapper().PixelToTime(x)
	v.zoom = clamp(level, v.limits.MinZoom, v.limits.MaxZoom)
	v.scroll = anchor*v.mapper().PixelsPerSecond() - x
	v.clampScroll()
}

// ScrollTo sets the scroll offset in pixels, clamped to the valid range.
func (v *Viewport) ScrollTo(offset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scroll = offset
	v.clampScroll()
}

// ScrollBy moves the scroll offset by delta pixels.
func (v *Viewport) ScrollBy(delta float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scroll += delta
	v.clampScroll()
}

func (v *Viewport) clampScroll() {
	if math.IsNaN(v.scroll) {
		v.scroll = 0
	}
	v.scroll = clamp(v.scroll, 0, v.mapper().MaxScroll())
}


package viewport

import "math"

// Selection framing used by ZoomToSelection.
const (
	// SelectionFill is the fraction of the viewport a framed selection occupies.
	SelectionFill = 0.9

	// SelectionMargin is where the selection start lands, as a fraction of width.
	SelectionMargin = 0.05
)

// ZoomToSelection zooms so that [start, end] fills the viewport and scrolls
// the selection start to SelectionMargin of the width from the left edge.
// Returns false when the selection is empty or no duration is known.
func (v *Viewport) ZoomToSelection(start, end float64) bool {
	return v.ZoomToSelectionWith(start, end, SelectionFill, SelectionMargin)
}

// ZoomToSelectionWith is ZoomToSelection with explicit framing factors.
func (v *Viewport) ZoomToSelectionWith(start, end, fill, margin float64) bool {
	if end < start {
		start, end = end, start
	}
	span := end - start

	v.mu.Lock()
	defer v.mu.Unlock()

	if !(span > 0) || !(v.duration > 0) {
		return false
	}

	target := (v.duration / span) * fill
	v.zoom = clamp(target, math.Max(1, v.limits.MinZoom), v.limits.MaxZoom)
	v.scroll = v.mapper().ScrollForTime(start, margin)
	return true
}

// EnsureTimeVisible scrolls the minimum amount needed to keep t at least
// margin pixels away from either edge. Returns true if the scroll changed.
func (v *Viewport) EnsureTimeVisible(t, margin float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	m := v.mapper()
	margin = clamp(margin, 0, v.width/2)
	x := m.TimeToPixel(t)

	before := v.scroll
	switch {
	case x < margin:
		v.scroll += x - margin
	case x > v.width-margin:
		v.scroll += x - (v.width - margin)
	default:
		return false
	}
	v.clampScroll()
	return v.scroll != before
}

// CenterOn scrolls so that t sits in the middle of the viewport.
func (v *Viewport) CenterOn(t float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scroll = v.mapper().ScrollForTime(t, 0.5)
}

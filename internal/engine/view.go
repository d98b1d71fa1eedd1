package engine

import (
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Mapper returns the current time-pixel mapping for painting a frame.
func (e *Engine) Mapper() viewport.Mapper {
	return e.view.Mapper()
}

// Zoom returns the zoom factor.
func (e *Engine) Zoom() float64 {
	return e.view.Zoom()
}

// Scroll returns the scroll offset in pixels.
func (e *Engine) Scroll() float64 {
	return e.view.Scroll()
}

// ZoomTo sets the zoom factor, keeping the view centre fixed.
func (e *Engine) ZoomTo(level float64) {
	e.view.ZoomTo(level)
}

// ZoomAt sets the zoom factor, keeping the time under pixel x fixed.
func (e *Engine) ZoomAt(level, x float64) {
	e.view.ZoomAt(level, x)
}

// ZoomReset returns to zoom 1 with no scroll.
func (e *Engine) ZoomReset() {
	e.view.ZoomTo(1)
	e.view.ScrollTo(0)
}

// CenterOn scrolls so that t sits in the middle of the view.
func (e *Engine) CenterOn(t float64) {
	e.view.CenterOn(t)
}

// ScrollTo sets the scroll offset in pixels.
func (e *Engine) ScrollTo(offset float64) {
	e.view.ScrollTo(offset)
}

// ScrollBy moves the view by delta pixels.
func (e *Engine) ScrollBy(delta float64) {
	e.view.ScrollBy(delta)
}

// Resize sets the view width in pixels.
func (e *Engine) Resize(width float64) {
	e.view.Resize(width)
}

// ZoomToSelection frames the current selection. Returns ErrNoSelection
// when nothing is selected.
func (e *Engine) ZoomToSelection() error {
	e.mu.RLock()
	start, end, ok := e.cursor.Selection()
	fill, margin := e.settings.SelectionFill, e.settings.SelectionMargin
	e.mu.RUnlock()

	if !ok {
		return ErrNoSelection
	}
	e.view.ZoomToSelectionWith(start, end, fill, margin)
	return nil
}

// FollowCursor scrolls just enough to keep the cursor margin pixels
// inside the view.
func (e *Engine) FollowCursor(margin float64) bool {
	return e.view.EnsureTimeVisible(e.CursorTime(), margin)
}

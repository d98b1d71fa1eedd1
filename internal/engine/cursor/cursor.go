package cursor

import "math"

// Edge names one bound of the selection.
type Edge uint8

const (
	// EdgeStart is the lower bound of the selection.
	EdgeStart Edge = iota
	// EdgeEnd is the upper bound of the selection.
	EdgeEnd
)

// State is a snapshot of the cursor for rendering layers.
// SelectionStart and SelectionEnd are both nil when nothing is selected.
type State struct {
	CurrentTime    float64  `json:"currentTime"`
	SelectionStart *float64 `json:"selectionStart"`
	SelectionEnd   *float64 `json:"selectionEnd"`
}

// Cursor is the playback position plus an optional selection.
// Invariant: when a selection exists, its start is strictly before its end.
type Cursor struct {
	time     float64
	duration float64

	sel    Selection
	hasSel bool

	dragging   bool
	dragOrigin float64
}

// New creates a cursor at time 0 for a timeline of the given duration.
func New(duration float64) *Cursor {
	return &Cursor{duration: math.Max(0, duration)}
}

// Reset returns to time 0 with no selection for a new duration.
func (c *Cursor) Reset(duration float64) {
	*c = Cursor{duration: math.Max(0, duration)}
}

// SetDuration changes the duration and re-clamps the cursor and selection.
func (c *Cursor) SetDuration(duration float64) {
	c.duration = math.Max(0, duration)
	c.time = c.clamp(c.time)
	if c.hasSel {
		c.setRange(c.sel.Start(), c.sel.End())
	}
}

// Duration returns the timeline duration.
func (c *Cursor) Duration() float64 {
	return c.duration
}

// Time returns the playback position.
func (c *Cursor) Time() float64 {
	return c.time
}

// Selection returns the selected range. ok is false when nothing is selected.
func (c *Cursor) Selection() (start, end float64, ok bool) {
	if !c.hasSel {
		return 0, 0, false
	}
	return c.sel.Start(), c.sel.End(), true
}

// HasSelection returns true if a range is selected.
func (c *Cursor) HasSelection() bool {
	return c.hasSel
}

// State returns a snapshot for rendering.
func (c *Cursor) State() State {
	st := State{CurrentTime: c.time}
	if c.hasSel {
		start, end := c.sel.Start(), c.sel.End()
		st.SelectionStart = &start
		st.SelectionEnd = &end
	}
	return st
}

// Seek moves the playback position, clamped to [0, duration].
func (c *Cursor) Seek(t float64) {
	c.time = c.clamp(t)
}

// SeekBy moves the playback position by delta seconds.
func (c *Cursor) SeekBy(delta float64) {
	c.Seek(c.time + delta)
}

// PointerDown seeks to t, clears the selection and starts a drag at t.
func (c *Cursor) PointerDown(t float64) {
	t = c.clamp(t)
	c.time = t
	c.ClearSelection()
	c.dragging = true
	c.dragOrigin = t
}

// PointerDrag extends the drag to t. A drag that collapses to zero width
// clears the selection. Drags without a preceding PointerDown are ignored.
func (c *Cursor) PointerDrag(t float64) {
	if !c.dragging {
		return
	}
	c.setSelection(NewSelection(c.dragOrigin, c.clamp(t)))
}

// PointerUp ends the drag.
func (c *Cursor) PointerUp() {
	c.dragging = false
}

// SetSelection selects [min(a,b), max(a,b)]. Equal bounds clear the selection.
func (c *Cursor) SetSelection(a, b float64) {
	c.setSelection(NewSelection(a, b))
}

// ClearSelection removes the selection.
func (c *Cursor) ClearSelection() {
	c.sel = Selection{}
	c.hasSel = false
}

// ExtendSelection moves one selection bound by delta seconds, clamped to
// [0, duration]. Without a selection both bounds are seeded at the
// playback position before the move, so the first step creates a range
// of width |delta|. A bound pushed past the other collapses the selection.
func (c *Cursor) ExtendSelection(edge Edge, delta float64) {
	start, end := c.time, c.time
	if c.hasSel {
		start, end = c.sel.Start(), c.sel.End()
	}

	switch edge {
	case EdgeStart:
		start = math.Min(c.clamp(start+delta), end)
	case EdgeEnd:
		end = math.Max(c.clamp(end+delta), start)
	}
	c.setRange(start, end)
}

func (c *Cursor) setSelection(s Selection) {
	c.setRange(s.Start(), s.End())
	if c.hasSel {
		c.sel = Selection{Anchor: c.clamp(s.Anchor), Head: c.clamp(s.Head)}
	}
}

func (c *Cursor) setRange(start, end float64) {
	start, end = c.clamp(start), c.clamp(end)
	if !(start < end) {
		c.ClearSelection()
		return
	}
	c.sel = Selection{Anchor: start, Head: end}
	c.hasSel = true
}

// clamp limits t to [0, duration]. With no known duration only the lower
// bound applies.
func (c *Cursor) clamp(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if c.duration > 0 && t > c.duration {
		return c.duration
	}
	return t
}

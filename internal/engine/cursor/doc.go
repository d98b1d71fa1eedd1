// Package cursor tracks the playback cursor and the time-range selection
// shared by every visual pane.
//
// Selection Model:
//
// Selections use the anchor/head model: Anchor is where a drag started and
// Head follows the pointer. Range always reports Start <= End. A selection
// whose range has zero width does not exist; the cursor collapses it to
// "no selection" instead of keeping an empty range.
//
// Basic usage:
//
//	c := cursor.New(12.5)      // duration in seconds
//	c.PointerDown(1.0)         // seek, clear selection, start drag
//	c.PointerDrag(2.5)         // selection [1.0, 2.5]
//	c.PointerUp()
//
//	start, end, ok := c.Selection()
//
// Boundary navigation operates on the sorted boundary list produced by the
// annotation store:
//
//	prev, ok := cursor.PreviousBoundary(bounds, c.Time(), 0.01)
package cursor

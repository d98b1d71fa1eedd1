// Package cursor provides handlers for playback cursor and time selection
// actions.
//
// The Handler type owns the "cursor" namespace:
//   - cursor.stepBackward / cursor.stepForward: move by [count] seek steps
//   - cursor.start / cursor.end: jump to 0 or the timeline end
//   - cursor.previousBoundary / cursor.nextBoundary: jump between annotation edges
//   - cursor.seek: jump to the "time" argument, in seconds
//
// The SelectionHandler type owns the "selection" namespace:
//   - selection.growLeft / selection.growRight: move the outer edge outward
//   - selection.shrinkLeft / selection.shrinkRight: move an edge inward
//   - selection.clear: drop the selection
//   - selection.all: select the whole timeline
//
// Every cursor action asks the view to follow the cursor.
package cursor

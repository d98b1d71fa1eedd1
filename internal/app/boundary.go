package app

import (
	"math"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/engine/annotation"
)

// grabTolerance is how many pixels from an edge a press may land and still
// pick it up.
const grabTolerance = 1.0

// edge names the part of an annotation a drag moves.
type edge int

const (
	edgeStart edge = iota
	edgeEnd
	edgePoint
)

// boundaryGrab is an edge drag in progress.
type boundaryGrab struct {
	id   string
	edge edge
}

// grabBoundary starts dragging an edge of the selected annotation when x
// lands on it. The whole drag becomes one undo step.
func (app *Application) grabBoundary(tier string, x float64) bool {
	a, ok := app.engine.SelectedAnnotation()
	if !ok || a.Tier != tier {
		return false
	}
	m := app.engine.Mapper()
	dStart := math.Abs(m.TimeToPixel(a.Start) - x)
	dEnd := math.Abs(m.TimeToPixel(a.End) - x)

	grab := boundaryGrab{id: a.ID}
	switch {
	case a.Type == engine.Point && dStart <= grabTolerance:
		grab.edge = edgePoint
	case a.Type == engine.Point:
		return false
	case dStart <= grabTolerance && dStart <= dEnd:
		grab.edge = edgeStart
	case dEnd <= grabTolerance:
		grab.edge = edgeEnd
	default:
		return false
	}

	app.grab = &grab
	app.engine.BeginEdit("move boundary")
	return true
}

// moveBoundary puts the grabbed edge under pixel x. An edge never crosses
// the other edge of its interval.
func (app *Application) moveBoundary(x float64) {
	a, ok := app.engine.Get(app.grab.id)
	if !ok {
		return
	}
	t := app.engine.Mapper().PixelToTimeClamped(x)

	start, end := a.Start, a.End
	switch app.grab.edge {
	case edgeStart:
		start = min(t, a.End)
	case edgeEnd:
		end = max(t, a.Start)
	case edgePoint:
		start, end = t, t
	}
	if start == a.Start && end == a.End {
		return
	}
	if _, err := app.engine.UpdateAnnotation(a.ID, annotation.SetTimes(start, end)); err != nil {
		app.log.Debug("move boundary of %s: %v", a.ID, err)
		return
	}
	if err := app.engine.SelectAnnotation(a.ID); err != nil {
		app.log.Debug("reselect %s: %v", a.ID, err)
	}
}

// releaseBoundary ends the drag and records it.
func (app *Application) releaseBoundary() {
	app.engine.EndEdit()
	app.grab = nil
}

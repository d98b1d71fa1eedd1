package app

import (
	"errors"
	"math"
	"time"

	"github.com/dshills/tierline/internal/config"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
	"github.com/dshills/tierline/internal/renderer"
	"github.com/dshills/tierline/internal/renderer/backend"
)

// wheelScrollShare is the share of the view width one wheel notch scrolls.
const wheelScrollShare = 0.1

// configReload is posted to the loop by the settings watcher.
type configReload struct {
	config config.Config
	err    error
}

// eventLoop paints a frame, then handles events until quit.
func (app *Application) eventLoop() error {
	defer app.Shutdown()
	events := app.startInputPolling()
	app.render()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			start := time.Now()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordInput(time.Since(start))
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				app.log.Warn("%v", err)
				app.setMessage(err.Error(), renderer.MessageError)
			}
			app.render()
		}
	}
}

func (app *Application) render() {
	start := time.Now()
	app.renderer.Render(app.engine, app.status())
	app.metrics.RecordFrame(time.Since(start))
}

// status collects the session state shown around the timeline.
func (app *Application) status() renderer.Status {
	mode := app.input.Mode()
	msg, kind := app.Message()
	return renderer.Status{
		Title:   app.document.Name,
		Mode:    mode.String(),
		Editing: mode == input.ModeLabel,
		Label:   app.input.Label(),
		Message: msg,
		Kind:    kind,
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the session should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventInterrupt:
		if r, ok := ev.Data.(configReload); ok {
			app.applyConfig(r.config, r.err)
		}
	}
	return nil
}

// handleResize keeps the engine's view width equal to the timeline area.
func (app *Application) handleResize(ev backend.Event) {
	app.renderer.Resize(ev.Width, ev.Height)
	app.engine.Resize(float64(app.renderer.TimelineWidth()))
}

func (app *Application) handleKey(ev backend.Event) error {
	app.clearMessage()
	action, ok := app.input.HandleKey(ev.Key)
	if !ok {
		return nil
	}
	return app.dispatch(action)
}

// dispatch runs an action and carries out the requests in its result.
func (app *Application) dispatch(action input.Action) error {
	armed := app.quitArmed
	app.quitArmed = false

	// A key ends an edge drag, so undo sees the drag as one step.
	if app.grab != nil {
		app.releaseBoundary()
		app.held = true
	}

	result := app.dispatcher.Dispatch(action)
	switch {
	case result.IsError():
		app.backend.Beep()
		app.setMessage(result.Message, renderer.MessageError)
	case result.Message != "":
		app.setMessage(result.Message, renderer.MessageInfo)
	}

	switch result.Request {
	case handler.RequestSave:
		app.save()
	case handler.RequestQuit:
		return app.quit(armed)
	}
	return nil
}

func (app *Application) save() {
	if err := app.document.Save(app.engine); err != nil {
		app.log.Warn("%v", err)
		app.setMessage(err.Error(), renderer.MessageError)
		return
	}
	app.log.WithField("file", app.document.Path).Info("saved as %s", app.document.Format)
	app.setMessage("saved "+app.document.Name, renderer.MessageInfo)
}

// quit returns ErrQuit unless there are unsaved changes and the previous
// action was not a refused quit.
func (app *Application) quit(armed bool) error {
	if app.engine.Modified() && !armed {
		app.quitArmed = true
		app.setMessage(ErrUnsavedChanges.Error()+": quit again to discard", renderer.MessageWarning)
		return nil
	}
	return ErrQuit
}

// handleMouse maps presses, drags and releases on the ruler and tier rows
// to pointer operations. Pressing on an edge of the selected annotation
// drags that edge instead. The wheel zooms around the pointer; horizontal
// wheel scrolls.
func (app *Application) handleMouse(ev backend.Event) {
	if app.input.Mode() == input.ModeLabel {
		return
	}
	x := app.renderer.TimelineX(ev.MouseX)

	switch {
	case ev.Buttons.Has(backend.MouseWheelUp):
		app.engine.ZoomAt(app.engine.Zoom()*app.engine.Settings().ZoomStep, x)
	case ev.Buttons.Has(backend.MouseWheelDown):
		app.engine.ZoomAt(app.engine.Zoom()/app.engine.Settings().ZoomStep, x)
	case ev.Buttons.Has(backend.MouseWheelLeft):
		app.engine.ScrollBy(-app.engine.Mapper().Width * wheelScrollShare)
	case ev.Buttons.Has(backend.MouseWheelRight):
		app.engine.ScrollBy(app.engine.Mapper().Width * wheelScrollShare)

	case ev.Buttons.Has(backend.MouseLeft):
		if app.held {
			return
		}
		if app.grab != nil {
			app.moveBoundary(x)
			return
		}
		if app.dragging {
			app.engine.PointerDrag(x)
			return
		}
		hit := app.renderer.HitTest(ev.MouseX, ev.MouseY)
		if hit.Region == renderer.RegionTier && app.grabBoundary(hit.Tier, hit.X) {
			return
		}
		if hit.Tier != "" {
			if err := app.engine.SetActiveTier(hit.Tier); err != nil {
				app.log.Debug("click on tier %s: %v", hit.Tier, err)
			}
		}
		if hit.Region == renderer.RegionTier || hit.Region == renderer.RegionRuler {
			app.dragging = true
			app.dragTier = hit.Tier
			app.engine.PointerDown(hit.X)
		}

	default:
		app.held = false
		if app.grab != nil {
			app.releaseBoundary()
			return
		}
		if !app.dragging {
			return
		}
		app.dragging = false
		app.engine.PointerUp()
		// A click without a drag on a tier row selects what it hit.
		if _, _, ok := app.engine.Selection(); !ok && app.dragTier != "" {
			if a, ok := annotationNear(app.engine, app.dragTier, app.engine.CursorTime()); ok {
				if err := app.engine.SelectAnnotation(a.ID); err != nil {
					app.log.Debug("select %s: %v", a.ID, err)
				}
			}
		}
	}
}

// annotationNear finds the annotation on tier under time t: an interval
// containing t, or a point within one column of it.
func annotationNear(e *engine.Engine, tier string, t float64) (engine.Annotation, bool) {
	tolerance := 0.0
	if pps := e.Mapper().PixelsPerSecond(); pps > 0 {
		tolerance = 1 / pps
	}
	for _, a := range e.InTier(tier) {
		if a.Type == engine.Point {
			if math.Abs(a.Start-t) <= tolerance {
				return a, true
			}
			continue
		}
		if a.Start <= t && t < a.End {
			return a, true
		}
	}
	return engine.Annotation{}, false
}

// postReload is the settings watcher callback. It runs on the watcher's
// goroutine, so the reload is posted to the loop instead of applied here.
func (app *Application) postReload(cfg config.Config, err error) {
	app.backend.PostEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: configReload{config: cfg, err: err},
	})
}

// applyConfig swaps in reloaded settings. A settings file that fails to
// load or validate keeps the previous settings.
func (app *Application) applyConfig(cfg config.Config, err error) {
	if err != nil {
		app.log.Warn("settings reload: %v", err)
		app.setMessage("settings not reloaded: "+err.Error(), renderer.MessageError)
		return
	}
	km, err := cfg.BuildKeymap()
	if err != nil {
		app.log.Warn("keymap reload: %v", err)
		app.setMessage("keymap not reloaded: "+err.Error(), renderer.MessageError)
		return
	}

	app.engine.ApplySettings(cfg.ToEngineSettings())
	app.input.SetKeymap(km)
	app.log.SetLevel(cfg.LogLevel())

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.log.Info("settings reloaded from %s", cfg.Path)
	app.setMessage("settings reloaded", renderer.MessageInfo)
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent blocks, so the goroutine only notices shutdown once the
// backend is shut down and returns empty events.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventNone {
				select {
				case <-app.done:
					return
				default:
					continue
				}
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}

package dispatcher_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/dshills/tierline/internal/dispatcher"
	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
	"github.com/dshills/tierline/internal/input/key"
	"github.com/dshills/tierline/internal/input/keymap"
	"github.com/dshills/tierline/internal/logging"
)

func newEngine(t *testing.T, duration float64) *engine.Engine {
	t.Helper()
	n := 0
	e := engine.New(engine.WithWidth(1000), engine.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}))
	e.Open(duration)
	return e
}

func newDispatcher(t *testing.T, e *engine.Engine, cfg dispatcher.Config) *dispatcher.Dispatcher {
	t.Helper()
	d := dispatcher.NewDefault(cfg)
	d.SetEngine(e)
	return d
}

func TestDispatchUnknownAction(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(input.NewAction("unknown.action"))
	if result.Status != handler.StatusError {
		t.Fatalf("Status = %v, want error", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrUnknownAction) {
		t.Errorf("Error = %v, want ErrUnknownAction", result.Error)
	}

	if r := d.Dispatch(input.Action{}); !errors.Is(r.Error, dispatcher.ErrInvalidAction) {
		t.Errorf("empty action error = %v, want ErrInvalidAction", r.Error)
	}
}

func TestDispatchWithoutEngine(t *testing.T) {
	d := dispatcher.NewDefault(dispatcher.DefaultConfig())
	result := d.DispatchName("cursor.start")
	if !errors.Is(result.Error, execctx.ErrMissingEngine) {
		t.Errorf("Error = %v, want ErrMissingEngine", result.Error)
	}
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.panic", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.DispatchName("test.panic")
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("Error = %v, want ErrPanic", result.Error)
	}
}

func TestPreHookCancels(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	called := false
	d.RegisterHandlerFunc("test.action", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(a *input.Action, _ *execctx.ExecutionContext) bool {
		return a.Name != "test.action"
	}))

	if r := d.DispatchName("test.action"); r.Status != handler.StatusCancelled {
		t.Errorf("Status = %v, want cancelled", r.Status)
	}
	if called {
		t.Error("handler ran despite cancelling hook")
	}
}

func TestPostHookSeesResult(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	e := newEngine(t, 10)
	d := newDispatcher(t, e, dispatcher.DefaultConfig())
	d.SetLogger(log)
	d.RegisterPostHook(dispatcher.LoggingHook{})

	d.DispatchName("view.zoomSelection")
	d.RegisterHandlerFunc("test.fail", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("broken")
	})
	d.DispatchName("test.fail")

	out := buf.String()
	if !strings.Contains(out, "action=view.zoomSelection") {
		t.Errorf("log missing zoomSelection dispatch:\n%s", out)
	}
	if !strings.Contains(out, "action failed: broken") {
		t.Errorf("log missing failure:\n%s", out)
	}
}

func TestDefaultKeymapIsFullyHandled(t *testing.T) {
	d := dispatcher.NewDefault(dispatcher.DefaultConfig())
	for _, b := range keymap.Default().Bindings() {
		if !d.CanDispatch(b.Action) {
			t.Errorf("binding %s -> %s has no handler", b.Keys, b.Action)
		}
	}
}

func TestCountIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  float64
	}{
		{"unlimited", 0, 0.5},
		{"limited", 2, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 10)
			cfg := dispatcher.DefaultConfig()
			cfg.MaxRepeatCount = tt.limit
			d := newDispatcher(t, e, cfg)

			d.Dispatch(input.NewAction("cursor.stepForward").WithArg("count", 5))
			if got := e.CursorTime(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CursorTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFollowCursorScrollsView(t *testing.T) {
	e := newEngine(t, 100)
	d := newDispatcher(t, e, dispatcher.DefaultConfig())
	e.ZoomTo(10)
	e.ScrollTo(0)

	if r := d.DispatchName("cursor.end"); !r.IsOK() {
		t.Fatalf("cursor.end = %+v", r)
	}
	m := e.Mapper()
	if !m.IsTimeVisible(e.CursorTime()) {
		t.Errorf("cursor at %v not visible in [%v, %v]", e.CursorTime(), m.StartTime(), m.EndTime())
	}
}

func TestMetrics(t *testing.T) {
	e := newEngine(t, 10)
	d := newDispatcher(t, e, dispatcher.DefaultConfig().WithMetrics())

	d.DispatchName("cursor.stepForward")
	d.DispatchName("cursor.stepForward")
	d.DispatchName("history.undo")

	m := d.Metrics()
	if n, errs, _ := m.Totals(); n != 3 || errs != 0 {
		t.Errorf("Totals() = %d dispatches, %d errors; want 3, 0", n, errs)
	}
	top := m.Top(5)
	if len(top) != 2 || top[0].Name != "cursor.stepForward" || top[0].Count != 2 {
		t.Errorf("Top(5) = %+v", top)
	}
	if stats, ok := m.Stats("history.undo"); !ok || stats.Last != handler.StatusNoOp {
		t.Errorf("Stats(history.undo) = %+v, %v", stats, ok)
	}
}

// press feeds one chord through the input handler and dispatches any action.
func press(t *testing.T, h *input.Handler, d *dispatcher.Dispatcher, spec string) handler.Result {
	t.Helper()
	ev := key.MustParse(spec)
	action, ok := h.HandleKey(ev)
	if !ok {
		return handler.NoOp()
	}
	return d.Dispatch(action)
}

func TestKeyboardAnnotationSession(t *testing.T) {
	e := newEngine(t, 10)
	if _, err := e.DeclareTier("words", engine.Interval); err != nil {
		t.Fatal(err)
	}
	d := newDispatcher(t, e, dispatcher.DefaultConfig())
	h := input.NewHandler(keymap.Default())
	d.SetModeSwitcher(h)

	press(t, h, d, "Down") // activate the first tier
	if e.ActiveTier() != "words" {
		t.Fatalf("ActiveTier() = %q, want words", e.ActiveTier())
	}

	// Without a selection there is nothing to annotate.
	if r := press(t, h, d, "Enter"); r.Status != handler.StatusNoOp {
		t.Errorf("create without selection = %v, want no-op", r.Status)
	}

	e.SetCursor(1)
	for i := 0; i < 10; i++ {
		press(t, h, d, "Shift+Right")
	}
	start, end, ok := e.Selection()
	if !ok || math.Abs(start-1) > 1e-9 || math.Abs(end-1.5) > 1e-9 {
		t.Fatalf("Selection() = %v, %v, %v; want 1, 1.5", start, end, ok)
	}

	if r := press(t, h, d, "Enter"); !r.IsOK() {
		t.Fatalf("create = %+v", r)
	}
	if h.Mode() != input.ModeLabel {
		t.Fatalf("Mode() = %v after create, want LABEL", h.Mode())
	}
	for _, r := range "hi" {
		press(t, h, d, string(r))
	}
	if r := press(t, h, d, "Enter"); !r.IsOK() {
		t.Fatalf("setText = %+v", r)
	}

	got := e.InTier("words")
	if len(got) != 1 || got[0].Text != "hi" || got[0].Start != start || got[0].End != end {
		t.Fatalf("InTier(words) = %+v", got)
	}

	press(t, h, d, "Ctrl+Z")
	if got := e.InTier("words"); len(got) != 1 || got[0].Text != "" {
		t.Errorf("after one undo = %+v, want unlabeled annotation", got)
	}
	press(t, h, d, "Ctrl+Z")
	if n := len(e.Annotations()); n != 0 {
		t.Errorf("after two undos %d annotations remain", n)
	}
	press(t, h, d, "Ctrl+Shift+Z")
	press(t, h, d, "Ctrl+Y")
	if got := e.InTier("words"); len(got) != 1 || got[0].Text != "hi" {
		t.Errorf("after redo = %+v", got)
	}
}

func TestEditAndDeleteUnderCursor(t *testing.T) {
	e := newEngine(t, 10)
	a, err := e.CreateAnnotation("words", 2, 3, engine.Interval)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.UpdateAnnotation(a.ID, engine.Patch{Text: ptr("old")}); err != nil {
		t.Fatal(err)
	}
	d := newDispatcher(t, e, dispatcher.DefaultConfig())
	h := input.NewHandler(nil)
	d.SetModeSwitcher(h)

	press(t, h, d, "Down")
	e.SetCursor(2.5)
	press(t, h, d, "e")
	if h.Mode() != input.ModeLabel || h.Label() != "old" {
		t.Fatalf("mode = %v, label = %q", h.Mode(), h.Label())
	}
	press(t, h, d, "Escape")
	if got, _ := e.Get(a.ID); got.Text != "old" {
		t.Errorf("cancelled edit changed text to %q", got.Text)
	}

	if r := press(t, h, d, "Delete"); !r.IsOK() {
		t.Fatalf("delete = %+v", r)
	}
	if _, ok := e.Get(a.ID); ok {
		t.Error("annotation still present after delete")
	}
	if r := press(t, h, d, "Delete"); r.Status != handler.StatusNoOp {
		t.Errorf("second delete = %v, want no-op", r.Status)
	}
}

func TestSessionRequests(t *testing.T) {
	d := newDispatcher(t, newEngine(t, 1), dispatcher.DefaultConfig())
	if r := d.DispatchName("file.save"); r.Request != handler.RequestSave {
		t.Errorf("file.save Request = %v, want save", r.Request)
	}
	if r := d.DispatchName("app.quit"); r.Request != handler.RequestQuit {
		t.Errorf("app.quit Request = %v, want quit", r.Request)
	}
}

func ptr[T any](v T) *T { return &v }

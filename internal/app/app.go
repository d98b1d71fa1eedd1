// Package app runs the interactive annotation session. It owns the
// engine, routes terminal input through the keymap and dispatcher, and
// paints the timeline after every event.
package app

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/tierline/internal/config"
	"github.com/dshills/tierline/internal/dispatcher"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/input"
	"github.com/dshills/tierline/internal/logging"
	"github.com/dshills/tierline/internal/renderer"
	"github.com/dshills/tierline/internal/renderer/backend"
)

// Application is the terminal annotation session.
type Application struct {
	mu sync.RWMutex

	config config.Config
	log    *logging.Logger

	engine     *engine.Engine
	input      *input.Handler
	dispatcher *dispatcher.Dispatcher
	renderer   *renderer.Renderer
	backend    backend.Backend
	watcher    *config.Watcher

	document *Document
	metrics  *Metrics

	// Status line message, cleared by the next key.
	message     string
	messageKind renderer.MessageKind

	// quitArmed is set after a refused quit; a second quit discards.
	quitArmed bool

	// Pointer drag state. grab is set while a boundary of the selected
	// annotation follows the pointer. held ignores the rest of a press
	// whose drag a key ended.
	dragging bool
	dragTier string
	grab     *boundaryGrab
	held     bool

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// Path is the annotation file to edit. It need not exist yet.
	Path string

	// Duration is the recording length in seconds. Zero adopts the
	// extent of the opened file.
	Duration float64

	// Tiers are declared after opening, as "name" or "name:point".
	Tiers []string

	// Imports are merged into the opened timeline in order. Each merge
	// can be undone; the session starts modified.
	Imports []string

	// Config is the loaded settings.
	Config config.Config

	// WatchConfig reloads settings while the session runs.
	WatchConfig bool

	// Logger receives session logs. Defaults to a discarding logger.
	Logger *logging.Logger
}

// New opens the document and wires the session components.
func New(opts Options) (*Application, error) {
	if opts.Path == "" {
		return nil, ErrNoFilePath
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	cfg := opts.Config
	if cfg.Logging.Level == "" {
		cfg = config.Default()
	}

	km, err := cfg.BuildKeymap()
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}

	app := &Application{
		config:  cfg,
		log:     log.WithComponent("app"),
		metrics: NewMetrics(),
		done:    make(chan struct{}),
		opts:    opts,
	}

	app.engine = engine.New(
		engine.WithSettings(cfg.ToEngineSettings()),
		engine.WithLogger(log.WithComponent("engine")),
	)
	app.document, err = OpenDocument(app.engine, opts.Path, opts.Duration, cfg.ExportKind())
	if err != nil {
		return nil, err
	}
	for _, spec := range opts.Tiers {
		if err := declareTier(app.engine, spec); err != nil {
			return nil, &InitError{Component: "tiers", Err: err}
		}
	}
	for _, path := range opts.Imports {
		res, err := app.document.Merge(app.engine, path)
		if err != nil {
			return nil, err
		}
		app.log.WithField("file", path).Info("merged %d annotations", len(res.Annotations))
	}

	app.input = input.NewHandler(km)
	app.dispatcher = dispatcher.NewDefault(dispatcher.DefaultConfig().WithMetrics())
	app.dispatcher.SetEngine(app.engine)
	app.dispatcher.SetModeSwitcher(app.input)
	app.dispatcher.SetLogger(log)
	app.dispatcher.RegisterPostHook(dispatcher.LoggingHook{})

	if n := len(app.document.Warnings); n > 0 {
		for _, w := range app.document.Warnings {
			app.log.Warn("%s", w)
		}
		app.setMessage(fmt.Sprintf("%d import warnings; see log", n), renderer.MessageWarning)
	}
	app.log.WithField("file", app.document.Path).Info("session opened as %s", app.document.Format)
	return app, nil
}

// declareTier parses "name" or "name:type" and declares the tier.
func declareTier(e *engine.Engine, spec string) error {
	name, typeName, _ := strings.Cut(spec, ":")
	typ, err := annotation.ParseType(typeName)
	if err != nil {
		return err
	}
	_, err = e.DeclareTier(name, typ)
	return err
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the session loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.renderer = renderer.New(b, renderer.DefaultOptions())
	app.mu.Unlock()
	app.engine.Resize(float64(app.renderer.TimelineWidth()))

	if app.opts.WatchConfig && app.config.Path != "" {
		w, err := config.NewWatcher(app.config, app.postReload, config.WithWatcherLogger(app.log))
		if err != nil {
			app.log.Warn("settings watcher: %v", err)
		} else {
			app.watcher = w
			defer w.Close()
		}
	}

	err := app.eventLoop()

	app.logSessionStats()
	return err
}

// logSessionStats writes frame, input and action counters at debug level.
func (app *Application) logSessionStats() {
	s := app.metrics.Snapshot()
	app.log.Debug("session ended after %s: %d frames (avg %s, max %s), %d events, %d dropped",
		s.Uptime.Round(time.Millisecond), s.FrameCount, s.AvgFrame, s.MaxFrame, s.InputCount, s.InputDropped)

	m := app.dispatcher.Metrics()
	if m == nil {
		return
	}
	n, errs, panics := m.Totals()
	app.log.Debug("%d actions, %d failed, %d panics", n, errs, panics)
	for _, a := range m.Top(5) {
		app.log.WithField("action", a.Name).Debug("%d dispatches, mean %s", a.Count, a.Mean())
	}
}

// Shutdown stops the session loop. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
}

// IsRunning returns true if the session loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Engine returns the annotation engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Input returns the key handler.
func (app *Application) Input() *input.Handler {
	return app.input
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.document
}

// Config returns the active settings.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Message returns the status line message and its kind.
func (app *Application) Message() (string, renderer.MessageKind) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.message, app.messageKind
}

func (app *Application) setMessage(msg string, kind renderer.MessageKind) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.message = msg
	app.messageKind = kind
}

func (app *Application) clearMessage() {
	app.setMessage("", renderer.MessageInfo)
}

package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
	"github.com/dshills/tierline/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	engine *engine.Engine
	modes  execctx.ModeSwitcher
	log    *logging.Logger

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		log:      logging.Nop(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the annotation engine handlers act on.
func (d *Dispatcher) SetEngine(e *engine.Engine) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = e
}

// Engine returns the annotation engine.
func (d *Dispatcher) Engine() *engine.Engine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// SetModeSwitcher sets the receiver of mode changes.
func (d *Dispatcher) SetModeSwitcher(m execctx.ModeSwitcher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modes = m
}

// SetLogger sets the logger.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = l.WithComponent("dispatcher")
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext()
	if n, ok := action.Args.GetFloat("count"); ok && n > 0 {
		ctx.Count = int(n)
		if limit := d.config.MaxRepeatCount; limit > 0 && ctx.Count > limit {
			ctx.Count = limit
		}
	}

	if !d.runPreHooks(&action, ctx) {
		return handler.CancelledWithMessage("cancelled by hook")
	}

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		ctx.Log.Debug("no handler for %s", action.Name)
		return handler.Error(&UnknownActionError{Action: action.Name})
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)
	d.runPostHooks(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.Record(action.Name, time.Since(startTime), result.Status)
	}
	return result
}

// DispatchName dispatches an argument-free action by name.
func (d *Dispatcher) DispatchName(name string) handler.Result {
	return d.Dispatch(input.NewAction(name))
}

func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Log.Error("handler panic for %s: %v\n%s", action.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic()
			}
		}
	}()
	return h.Handle(action, ctx)
}

func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New(d.engine)
	ctx.Modes = d.modes
	ctx.Log = d.log
	return ctx
}

// processResult applies mode changes and view updates.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	if result.ModeChange != "" && ctx.Modes != nil {
		if err := ctx.Modes.SwitchMode(result.ModeChange, result.GetDataString("text")); err != nil {
			ctx.Log.Warn("mode change: %v", err)
		}
	}
	if result.ViewUpdate.FollowCursor && ctx.Engine != nil {
		ctx.Engine.FollowCursor(d.config.FollowMargin)
	}
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.RegisterHandler(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler under its own namespace.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h.Namespace(), h)
}

// CanDispatch reports whether some handler accepts the action name.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.CanRoute(actionName) || d.registry.Has(actionName)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

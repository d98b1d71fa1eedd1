package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/tierline/internal/logging"
)

// ErrNoSettingsFile is returned by NewWatcher for a config that was not
// read from a file.
var ErrNoSettingsFile = errors.New("config has no settings file to watch")

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the result of a reload. On error the previous config
// should be kept.
type ReloadFunc func(Config, error)

// Watcher reloads settings when the settings file or its keymap file
// changes. Parent directories are watched rather than the files so that
// editors which save by rename are still seen.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	path     string
	onReload ReloadFunc
	debounce time.Duration
	log      *logging.Logger

	targets map[string]bool
	dirs    map[string]bool
	timer   *time.Timer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWatcher starts watching cfg.Path and cfg's keymap file. onReload is
// called from the watcher goroutine after each settled change.
func NewWatcher(cfg Config, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, ErrNoSettingsFile
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     path,
		onReload: onReload,
		debounce: DefaultDebounce,
		log:      logging.Nop(),
		targets:  make(map[string]bool),
		dirs:     make(map[string]bool),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithComponent("config")

	cfg.Path = path
	if err := w.track(cfg); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}

// track points the watch set at the settings file and cfg's keymap file.
func (w *Watcher) track(cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	targets := map[string]bool{w.path: true}
	if p := cfg.KeymapPath(); p != "" {
		if abs, err := filepath.Abs(p); err == nil {
			targets[abs] = true
		}
	}
	w.targets = targets

	for p := range targets {
		dir := filepath.Dir(p)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	return nil
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !relevant(ev.Op) {
		return
	}
	name := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.targets[name] {
		return
	}
	w.log.Debug("%s changed", name)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// relevant reports whether an operation can change file content.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("reload failed: %v", err)
	} else {
		if terr := w.track(cfg); terr != nil {
			w.log.Warn("watching keymap file: %v", terr)
		}
		w.log.Info("settings reloaded from %s", w.path)
	}
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

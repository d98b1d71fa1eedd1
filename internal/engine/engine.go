package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/engine/cursor"
	"github.com/dshills/tierline/internal/engine/history"
	"github.com/dshills/tierline/internal/format"
	"github.com/dshills/tierline/internal/interchange"
	"github.com/dshills/tierline/internal/logging"
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Re-export commonly used types for convenience.
type (
	// Annotation is a labelled time marker.
	Annotation = annotation.Annotation

	// Tier is a tier declaration.
	Tier = annotation.Tier

	// Patch lists the fields an update changes.
	Patch = annotation.Patch

	// CursorState is a snapshot of cursor and selection.
	CursorState = cursor.State

	// Edge names one bound of the selection.
	Edge = cursor.Edge
)

// Re-export constants.
const (
	Interval = annotation.Interval
	Point    = annotation.Point

	EdgeStart = cursor.EdgeStart
	EdgeEnd   = cursor.EdgeEnd
)

// Engine is the annotation timeline: store, history, cursor and view
// behind one lock.
type Engine struct {
	mu sync.RWMutex

	duration float64
	store    *annotation.Store
	history  *history.History[[]annotation.Annotation]
	cursor   *cursor.Cursor
	view     *viewport.Viewport

	activeTier string
	selectedID string
	saved      []annotation.Annotation

	settings Settings
	log      *logging.Logger
	newID    func() string
	width    float64
}

// New creates an engine with an empty timeline.
func New(opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		log:      logging.Nop(),
		width:    DefaultWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("engine")

	var storeOpts []annotation.Option
	if e.newID != nil {
		storeOpts = append(storeOpts, annotation.WithIDGenerator(e.newID))
	}
	e.store = annotation.NewStore(storeOpts...)
	e.history = history.New([]annotation.Annotation{}, annotation.Equal, e.settings.MaxHistory)
	e.cursor = cursor.New(0)
	e.view = viewport.NewViewportWithLimits(e.width, e.settings.Limits)
	return e
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// ApplySettings replaces tunable settings on a live engine. Existing
// history and annotations are kept.
func (e *Engine) ApplySettings(s Settings) {
	s = s.withDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
	e.history.SetMaxEntries(s.MaxHistory)
	e.view.SetLimits(s.Limits)
	e.log.Debug("settings applied")
}

// Open resets the timeline for a new recording. Annotations, tiers,
// selection, zoom and history are all cleared; this is not undoable.
func (e *Engine) Open(duration float64) {
	if duration < 0 {
		duration = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.duration = duration
	e.store.Reset()
	e.history.Reset([]annotation.Annotation{})
	e.cursor.Reset(duration)
	e.view.Reset(duration)
	e.activeTier = ""
	e.selectedID = ""
	e.saved = nil
	e.log.Info("opened timeline of %.3fs", duration)
}

// Duration returns the timeline length in seconds.
func (e *Engine) Duration() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.duration
}

// SetDuration changes the timeline length without touching annotations,
// for example when audio metadata arrives after annotation has begun.
func (e *Engine) SetDuration(duration float64) {
	if duration < 0 {
		duration = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.setDurationLocked(duration)
}

func (e *Engine) setDurationLocked(duration float64) {
	e.duration = duration
	e.cursor.SetDuration(duration)
	e.view.SetDuration(duration)
}

// MarkSaved records the current annotations as the saved state.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = e.store.Annotations()
}

// Modified reports whether the annotations differ from the last
// MarkSaved, or from the empty timeline when nothing was saved.
func (e *Engine) Modified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !annotation.Equal(e.store.Annotations(), e.saved)
}

// commit records the store contents in history.
func (e *Engine) commit(label string) {
	e.history.SetLabeled(e.store.Annotations(), label)
}

// ImportResult reports what an import added.
type ImportResult struct {
	annotation.MergeResult

	// Format is the detected file format.
	Format format.Kind
	// Warnings lists lossy conversions and skipped tiers.
	Warnings []string
}

// Import parses a file and merges it into the timeline. Existing tiers and
// annotations are never replaced: tiers whose names are already declared
// are skipped and only new annotations are appended. A file that fails to
// parse or validate leaves the timeline untouched.
func (e *Engine) Import(raw []byte, filename string) (ImportResult, error) {
	e.mu.RLock()
	opts := e.settings.Import
	e.mu.RUnlock()

	doc, kind, err := interchange.Import(raw, filename, opts)
	if err != nil {
		e.log.WithField("file", filename).Warn("import failed: %v", err)
		return ImportResult{Format: kind}, err
	}
	res, err := e.ImportDocument(doc, filename)
	res.Format = kind
	return res, err
}

// Load replaces the timeline with the contents of a file. Unlike Import
// the loaded annotations are not undoable: they become both the history
// baseline and the saved state. A duration of zero adopts the file's
// extent. A file that fails to parse or validate leaves the timeline
// untouched.
func (e *Engine) Load(raw []byte, filename string, duration float64) (ImportResult, error) {
	e.mu.RLock()
	opts := e.settings.Import
	e.mu.RUnlock()

	doc, kind, err := interchange.Import(raw, filename, opts)
	if err == nil {
		err = annotation.ValidateImport(doc.Tiers, doc.Annotations)
	}
	if err != nil {
		e.log.WithField("file", filename).Warn("load failed: %v", err)
		return ImportResult{Format: kind}, err
	}

	e.Open(duration)
	res, err := e.ImportDocument(doc, filename)
	res.Format = kind
	if err != nil {
		return res, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Reset(e.store.Annotations())
	e.saved = e.store.Annotations()
	return res, nil
}

// ImportDocument merges an already parsed document.
func (e *Engine) ImportDocument(doc *format.Document, name string) (ImportResult, error) {
	log := e.log.WithField("file", name)

	e.mu.Lock()
	defer e.mu.Unlock()

	merged, err := e.store.Merge(doc.Tiers, doc.Annotations)
	if err != nil {
		log.Warn("import rejected: %v", err)
		return ImportResult{}, err
	}

	res := ImportResult{MergeResult: merged}
	res.Warnings = append(res.Warnings, doc.Warnings...)
	for _, name := range merged.TiersSkipped {
		res.Warnings = append(res.Warnings, fmt.Sprintf("tier %q already exists; kept the existing declaration", name))
	}

	if e.duration == 0 {
		if d := doc.MaxTime(); d > 0 {
			e.setDurationLocked(d)
		}
	}
	e.commit("import " + name)

	log.Info("imported %d annotations, %d new tiers", len(merged.Annotations), len(merged.TiersAdded))
	for _, w := range res.Warnings {
		log.Warn("%s", w)
	}
	return res, nil
}

// Document snapshots the timeline for writers.
func (e *Engine) Document() *format.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return format.FromAnnotations(e.duration, e.store.ListTiers(), e.store.Annotations())
}

// Export renders the timeline with the configured export options.
func (e *Engine) Export(kind format.Kind) ([]byte, error) {
	e.mu.RLock()
	opts := e.settings.Export
	e.mu.RUnlock()
	return e.ExportWith(kind, opts)
}

// ExportWith renders the timeline with explicit options.
func (e *Engine) ExportWith(kind format.Kind, opts interchange.ExportOptions) ([]byte, error) {
	out, err := interchange.Export(e.Document(), kind, opts)
	if err != nil {
		e.log.Warn("export %s failed: %v", kind, err)
		return nil, err
	}
	e.log.Debug("exported %d bytes as %s", len(out), kind)
	return out, nil
}

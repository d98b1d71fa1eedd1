package engine

import (
	"github.com/dshills/tierline/internal/engine/cursor"
	"github.com/dshills/tierline/internal/engine/history"
	"github.com/dshills/tierline/internal/interchange"
	"github.com/dshills/tierline/internal/logging"
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Default configuration values.
const (
	DefaultSeekStep        = 0.1
	DefaultSelectionStep   = 0.05
	DefaultBoundaryEpsilon = cursor.DefaultBoundaryEpsilon
	DefaultZoomStep        = 1.5
	DefaultWidth           = 1000
)

// Settings tunes engine behavior. Zero values are replaced by defaults.
type Settings struct {
	// MaxHistory bounds the undo stack.
	MaxHistory int
	// SeekStep is the cursor step for arrow keys, in seconds.
	SeekStep float64
	// SelectionStep is the step for extending a selection, in seconds.
	SelectionStep float64
	// BoundaryEpsilon keeps boundary navigation off the current boundary.
	BoundaryEpsilon float64
	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep float64
	// Limits bounds the zoom factor.
	Limits viewport.Limits
	// SelectionFill and SelectionMargin frame ZoomToSelection.
	SelectionFill   float64
	SelectionMargin float64
	// Import adjusts imported documents.
	Import interchange.ImportOptions
	// Export is used by Export.
	Export interchange.ExportOptions
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		MaxHistory:      history.DefaultMaxEntries,
		SeekStep:        DefaultSeekStep,
		SelectionStep:   DefaultSelectionStep,
		BoundaryEpsilon: DefaultBoundaryEpsilon,
		ZoomStep:        DefaultZoomStep,
		Limits:          viewport.DefaultLimits(),
		SelectionFill:   viewport.SelectionFill,
		SelectionMargin: viewport.SelectionMargin,
		Import:          interchange.ImportOptions{NormalizeText: true},
	}
}

// withDefaults fills zero fields.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.MaxHistory <= 0 {
		s.MaxHistory = d.MaxHistory
	}
	if s.SeekStep <= 0 {
		s.SeekStep = d.SeekStep
	}
	if s.SelectionStep <= 0 {
		s.SelectionStep = d.SelectionStep
	}
	if s.BoundaryEpsilon < 0 {
		s.BoundaryEpsilon = d.BoundaryEpsilon
	}
	if s.ZoomStep <= 1 {
		s.ZoomStep = d.ZoomStep
	}
	if s.Limits.MinZoom <= 0 || s.Limits.MaxZoom <= 0 {
		s.Limits = d.Limits
	}
	if s.SelectionFill <= 0 {
		s.SelectionFill = d.SelectionFill
	}
	if s.SelectionMargin < 0 {
		s.SelectionMargin = d.SelectionMargin
	}
	return s
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		e.settings = s.withDefaults()
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDGenerator replaces the annotation id generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// WithWidth sets the initial view width in pixels.
func WithWidth(width float64) Option {
	return func(e *Engine) {
		if width > 0 {
			e.width = width
		}
	}
}

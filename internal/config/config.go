package config

import (
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/format"
	"github.com/dshills/tierline/internal/interchange"
	"github.com/dshills/tierline/internal/logging"
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Config is the complete settings tree. The zero value is not useful;
// start from Default.
type Config struct {
	History    HistoryConfig    `toml:"history" yaml:"history"`
	View       ViewConfig       `toml:"view" yaml:"view"`
	Navigation NavigationConfig `toml:"navigation" yaml:"navigation"`
	Import     ImportConfig     `toml:"import" yaml:"import"`
	Export     ExportConfig     `toml:"export" yaml:"export"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Keymap     KeymapConfig     `toml:"keymap" yaml:"keymap"`

	// Path is the settings file this config was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 100},
		View: ViewConfig{
			MinZoom:                 viewport.MinZoom,
			MaxZoom:                 viewport.MaxZoom,
			ZoomStep:                engine.DefaultZoomStep,
			FallbackPixelsPerSecond: viewport.FallbackPixelsPerSecond,
			SelectionFill:           viewport.SelectionFill,
			SelectionMargin:         viewport.SelectionMargin,
		},
		Navigation: NavigationConfig{
			SeekStep:        engine.DefaultSeekStep,
			SelectionStep:   engine.DefaultSelectionStep,
			BoundaryEpsilon: engine.DefaultBoundaryEpsilon,
		},
		Import: ImportConfig{NormalizeText: true},
		Export: ExportConfig{Format: string(format.TextGrid)},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns ValidationErrors listing all
// problems, or nil.
func (c Config) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, v any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
	}
	positive := func(path string, v float64) {
		if !(v > 0) {
			add(path, "must be positive", v, ErrCodeOutOfRange)
		}
	}

	if c.History.MaxEntries < 1 {
		add("history.maxEntries", "must be at least 1", c.History.MaxEntries, ErrCodeOutOfRange)
	}

	positive("view.minZoom", c.View.MinZoom)
	if c.View.MaxZoom < c.View.MinZoom {
		add("view.maxZoom", "must not be below view.minZoom", c.View.MaxZoom, ErrCodeOutOfRange)
	}
	if !(c.View.ZoomStep > 1) {
		add("view.zoomStep", "must be greater than 1", c.View.ZoomStep, ErrCodeOutOfRange)
	}
	positive("view.fallbackPixelsPerSecond", c.View.FallbackPixelsPerSecond)
	if !(c.View.SelectionFill > 0 && c.View.SelectionFill <= 1) {
		add("view.selectionFill", "must be in (0, 1]", c.View.SelectionFill, ErrCodeOutOfRange)
	}
	if !(c.View.SelectionMargin >= 0 && c.View.SelectionMargin < 1) {
		add("view.selectionMargin", "must be in [0, 1)", c.View.SelectionMargin, ErrCodeOutOfRange)
	}

	positive("navigation.seekStep", c.Navigation.SeekStep)
	positive("navigation.selectionStep", c.Navigation.SelectionStep)
	if !(c.Navigation.BoundaryEpsilon >= 0) {
		add("navigation.boundaryEpsilon", "must not be negative", c.Navigation.BoundaryEpsilon, ErrCodeOutOfRange)
	}

	if kind, err := format.ParseKind(c.Export.Format); err != nil || !kind.CanWrite() {
		add("export.format", "unknown or read-only format", c.Export.Format, ErrCodeInvalidEnum)
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level, ErrCodeInvalidEnum)
	}
	for i, b := range c.Keymap.Bindings {
		if _, err := b.Chord(); err != nil {
			add("keymap.bindings", err.Error(), i, ErrCodeTypeMismatch)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExportKind returns the configured export format. Call after Validate.
func (c Config) ExportKind() format.Kind {
	kind, err := format.ParseKind(c.Export.Format)
	if err != nil {
		return format.TextGrid
	}
	return kind
}

// LogLevel returns the configured log level, defaulting to info.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// ToEngineSettings converts the settings the engine consumes.
func (c Config) ToEngineSettings() engine.Settings {
	s := engine.DefaultSettings()
	s.MaxHistory = c.History.MaxEntries
	s.SeekStep = c.Navigation.SeekStep
	s.SelectionStep = c.Navigation.SelectionStep
	s.BoundaryEpsilon = c.Navigation.BoundaryEpsilon
	s.ZoomStep = c.View.ZoomStep
	s.Limits = viewport.Limits{
		MinZoom:  c.View.MinZoom,
		MaxZoom:  c.View.MaxZoom,
		Fallback: c.View.FallbackPixelsPerSecond,
	}
	s.SelectionFill = c.View.SelectionFill
	s.SelectionMargin = c.View.SelectionMargin
	s.Import = interchange.ImportOptions{
		SkipEmpty:     c.Import.SkipEmpty,
		NormalizeText: c.Import.NormalizeText,
	}
	s.Export = interchange.ExportOptions{
		FillGaps: c.Export.FillGaps,
		Tiers:    append([]string(nil), c.Export.Tiers...),
	}
	return s
}

package config

import "github.com/dshills/tierline/internal/input/keymap"

// Section structs mirror the settings file layout. Field names are the
// camelCase keys used in TOML and YAML.

// HistoryConfig configures undo.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack.
	MaxEntries int `toml:"maxEntries" yaml:"maxEntries"`
}

// ViewConfig configures zoom and framing.
type ViewConfig struct {
	MinZoom  float64 `toml:"minZoom" yaml:"minZoom"`
	MaxZoom  float64 `toml:"maxZoom" yaml:"maxZoom"`
	ZoomStep float64 `toml:"zoomStep" yaml:"zoomStep"`

	// FallbackPixelsPerSecond is the scale used before a duration is known.
	FallbackPixelsPerSecond float64 `toml:"fallbackPixelsPerSecond" yaml:"fallbackPixelsPerSecond"`

	// SelectionFill is the share of the view a zoomed selection occupies.
	SelectionFill float64 `toml:"selectionFill" yaml:"selectionFill"`
	// SelectionMargin is where the selection starts, as a share of the width.
	SelectionMargin float64 `toml:"selectionMargin" yaml:"selectionMargin"`
}

// NavigationConfig configures cursor movement, in seconds.
type NavigationConfig struct {
	SeekStep        float64 `toml:"seekStep" yaml:"seekStep"`
	SelectionStep   float64 `toml:"selectionStep" yaml:"selectionStep"`
	BoundaryEpsilon float64 `toml:"boundaryEpsilon" yaml:"boundaryEpsilon"`
}

// ImportConfig adjusts imported documents.
type ImportConfig struct {
	SkipEmpty     bool `toml:"skipEmpty" yaml:"skipEmpty"`
	NormalizeText bool `toml:"normalizeText" yaml:"normalizeText"`
}

// ExportConfig configures saving and conversion.
type ExportConfig struct {
	// Format is the default output format name.
	Format string `toml:"format" yaml:"format"`
	// FillGaps pads interval tiers to cover the timeline.
	FillGaps bool `toml:"fillGaps" yaml:"fillGaps"`
	// Tiers restricts output to matching tier names (glob patterns).
	Tiers []string `toml:"tiers,omitempty" yaml:"tiers,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// KeymapConfig layers user bindings over the defaults.
type KeymapConfig struct {
	// File is a keymap file, resolved relative to the settings file.
	File string `toml:"file,omitempty" yaml:"file,omitempty"`
	// Bindings override both the defaults and File.
	Bindings []keymap.Binding `toml:"bindings,omitempty" yaml:"bindings,omitempty"`
}

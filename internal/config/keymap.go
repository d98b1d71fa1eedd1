package config

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/tierline/internal/input/keymap"
)

// KeymapPath returns the keymap file resolved against the settings file's
// directory, or "" if none is configured.
func (c Config) KeymapPath() string {
	p := c.Keymap.File
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if c.Path != "" {
		return filepath.Join(filepath.Dir(c.Path), p)
	}
	return p
}

// BuildKeymap layers the configured bindings over the default keymap: first
// the keymap file, then the inline bindings.
func (c Config) BuildKeymap() (*keymap.Keymap, error) {
	km := keymap.Default()

	if p := c.KeymapPath(); p != "" {
		file, err := keymap.LoadFile(p)
		if err != nil {
			return nil, err
		}
		km = km.Merge(file)
	}

	if len(c.Keymap.Bindings) > 0 {
		inline, err := keymap.FromBindings("settings", c.Keymap.Bindings)
		if err != nil {
			return nil, fmt.Errorf("keymap.bindings: %w", err)
		}
		inline.Source = "settings"
		km = km.Merge(inline)
	}
	return km, nil
}

// Package config loads tierline settings.
//
// Settings are layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← TIERLINE_*
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← settings.toml / settings.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A settings file may be TOML or YAML; the extension decides. Unknown keys
// are rejected so that typos surface as a ParseError instead of being
// silently ignored.
//
//	# settings.toml
//	[view]
//	zoomStep = 2.0
//
//	[navigation]
//	seekStep = 0.05
//
//	[keymap]
//	file = "keys.yaml"
//
//	[[keymap.bindings]]
//	keys = "Ctrl+D"
//	action = "annotation.delete"
//
// Load returns a validated Config. ToEngineSettings and BuildKeymap convert it
// for the engine and the input handler. Watcher reloads the settings file
// (and the keymap file it names) when either changes on disk.
package config

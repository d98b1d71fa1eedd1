// Package keymap binds key chords to timeline actions.
//
// A Keymap is an ordered list of bindings with an index for chord lookup.
// Later bindings for the same chord replace earlier ones, which is how a
// user keymap file overrides the defaults:
//
//	km := keymap.Default()
//	user, err := keymap.LoadFile("~/.config/tierline/keys.toml")
//	if err == nil {
//	    km = km.Merge(user)
//	}
//	if b, ok := km.Lookup(ev); ok {
//	    dispatch(b.Action, b.Args)
//	}
//
// Keymap files may be TOML, YAML or JSON:
//
//	name = "mine"
//
//	[[bindings]]
//	keys = "Ctrl+S"
//	action = "file.save"
package keymap

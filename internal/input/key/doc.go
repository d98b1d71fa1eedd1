// Package key models keyboard chords for the timeline keymap.
//
// A chord is a single key press plus modifiers. Specs are written as
// "Left", "Ctrl+Z", "Ctrl+Shift+Z", "Shift+Left", "+" or in Vim notation
// ("<C-z>", "<S-Left>"). Letter chords are normalised so that "Z",
// "Shift+z" and "Shift+Z" compare equal.
package key

package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent returns a normalised character event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize()
}

// NewSpecialEvent returns an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Normalize returns the canonical form used for keymap lookups. Upper-case
// letters become lower-case plus Shift. Shift is dropped from other
// printable characters, whose shifted form is already in the rune.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	switch {
	case unicode.IsUpper(e.Rune):
		e.Rune = unicode.ToLower(e.Rune)
		e.Modifiers = e.Modifiers.With(ModShift)
	case !unicode.IsLetter(e.Rune):
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	return e
}

// IsRune returns true for character events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPrintable returns true for text input: a printable character with no
// modifier other than Shift.
func (e Event) IsPrintable() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Text returns the character the event types, re-applying Shift to
// letters.
func (e Event) Text() rune {
	if e.Modifiers.Has(ModShift) {
		return unicode.ToUpper(e.Rune)
	}
	return e.Rune
}

// Equals compares two events after normalisation.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// String returns the spec form, for example "Ctrl+Shift+Z", "Left" or "+".
// Parse(e.String()) yields an equal event.
func (e Event) String() string {
	e = e.Normalize()
	var name string
	switch e.Key {
	case KeyRune:
		switch {
		case e.Rune == ' ':
			name = "Space"
		case unicode.IsLetter(e.Rune) && e.Modifiers != ModNone:
			name = string(unicode.ToUpper(e.Rune))
		default:
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// VimString returns Vim notation such as "<C-S-z>" or "<Left>".
func (e Event) VimString() string {
	e = e.Normalize()
	if e.Modifiers == ModNone && e.Key == KeyRune && e.Rune != ' ' {
		return string(e.Rune)
	}
	var parts []string
	for _, m := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "C"}, {ModAlt, "A"}, {ModShift, "S"}, {ModMeta, "D"}} {
		if e.Modifiers.Has(m.mod) {
			parts = append(parts, m.name)
		}
	}
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	case e.Key == KeyEnter:
		parts = append(parts, "CR")
	case e.Key == KeyEscape:
		parts = append(parts, "Esc")
	default:
		parts = append(parts, e.Key.String())
	}
	return "<" + strings.Join(parts, "-") + ">"
}

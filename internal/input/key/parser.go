package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse converts a chord spec into a normalised Event.
//
// Accepted forms:
//   - single characters: "a", "Z", "+", "="
//   - key names: "Enter", "Esc", "Left", "F5", "Space"
//   - modifier chords: "Ctrl+Z", "Ctrl+Shift+Left", "Ctrl++"
//   - Vim notation: "<C-z>", "<S-Left>", "<CR>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVim(spec[1 : len(spec)-1])
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseChord(spec)
	}
	return parseKey(spec, ModNone)
}

// MustParse is Parse for specs known to be valid. It panics on error.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key.MustParse(%q): %v", spec, err))
	}
	return ev
}

// Normalize re-formats a spec in canonical form.
func Normalize(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.String(), nil
}

func parseVim(inner string) (Event, error) {
	parts := strings.Split(inner, "-")
	// "<C-->" names the minus key.
	if strings.HasSuffix(inner, "--") {
		parts = append(strings.Split(strings.TrimSuffix(inner, "--"), "-"), "-")
	}
	mods, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return Event{}, err
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseChord(spec string) (Event, error) {
	keyPart := ""
	rest := spec
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		rest = strings.TrimSuffix(spec, "++")
	} else {
		i := strings.LastIndex(spec, "+")
		keyPart = spec[i+1:]
		rest = spec[:i]
	}
	mods, err := parseModifiers(strings.Split(rest, "+"))
	if err != nil {
		return Event{}, err
	}
	return parseKey(keyPart, mods)
}

func parseModifiers(names []string) (Modifier, error) {
	var mods Modifier
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m := ModifierFromName(name)
		if m == ModNone {
			return ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		mods = mods.With(m)
	}
	return mods, nil
}

func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if runes := []rune(name); len(runes) == 1 {
		r := runes[0]
		// In a chord the letter's case is cosmetic; Shift must be named.
		if mods != ModNone {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

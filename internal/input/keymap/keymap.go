package keymap

import (
	"fmt"

	"github.com/dshills/tierline/internal/input/key"
)

// Keymap holds chord bindings.
type Keymap struct {
	// Name identifies the keymap.
	Name string

	// Source records where the keymap came from ("default", a file path).
	Source string

	bindings []Binding
	index    map[key.Event]int // normalised chord -> position in bindings
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name, index: make(map[key.Event]int)}
}

// Add binds keys to action. It returns an error for an invalid chord spec.
func (k *Keymap) Add(keys, action string) error {
	return k.AddBinding(NewBinding(keys, action))
}

// AddBinding adds a binding. A binding for a chord that is already bound
// replaces the earlier one in place.
func (k *Keymap) AddBinding(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("binding %q: empty action", b.Keys)
	}
	chord, err := b.Chord()
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	if i, ok := k.index[chord]; ok {
		k.bindings[i] = b
		return nil
	}
	k.index[chord] = len(k.bindings)
	k.bindings = append(k.bindings, b)
	return nil
}

// Unbind removes the binding for a chord. It returns false if the chord
// was not bound.
func (k *Keymap) Unbind(keys string) bool {
	chord, err := key.Parse(keys)
	if err != nil {
		return false
	}
	i, ok := k.index[chord]
	if !ok {
		return false
	}
	k.bindings = append(k.bindings[:i], k.bindings[i+1:]...)
	k.reindex()
	return true
}

// Lookup returns the binding for a key event.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	i, ok := k.index[ev.Normalize()]
	if !ok {
		return Binding{}, false
	}
	return k.bindings[i], true
}

// KeysFor returns the chord specs bound to an action, in binding order.
func (k *Keymap) KeysFor(action string) []string {
	var out []string
	for _, b := range k.bindings {
		if b.Action == action {
			out = append(out, b.Keys)
		}
	}
	return out
}

// Bindings returns a copy of all bindings in order.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, len(k.bindings))
	for i, b := range k.bindings {
		out[i] = b.clone()
	}
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Merge returns a new keymap with other's bindings layered over k's.
// Neither input is modified.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	out := k.Clone()
	if other == nil {
		return out
	}
	for _, b := range other.bindings {
		// Both sides were validated on insert.
		_ = out.AddBinding(b.clone())
	}
	if other.Source != "" {
		out.Source = k.Source + "+" + other.Source
	}
	return out
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	out := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		bindings: make([]Binding, len(k.bindings)),
	}
	for i, b := range k.bindings {
		out.bindings[i] = b.clone()
	}
	out.reindex()
	return out
}

func (k *Keymap) reindex() {
	k.index = make(map[key.Event]int, len(k.bindings))
	for i, b := range k.bindings {
		if chord, err := b.Chord(); err == nil {
			k.index[chord] = i
		}
	}
}

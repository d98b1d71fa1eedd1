package keymap

import (
	"maps"

	"github.com/dshills/tierline/internal/input/key"
)

// Binding maps one chord to an action.
type Binding struct {
	// Keys is the chord spec, for example "Ctrl+Shift+Z" or "<C-y>".
	Keys string `json:"keys" toml:"keys" yaml:"keys"`

	// Action is the dispatcher action name, for example "history.redo".
	Action string `json:"action" toml:"action" yaml:"action"`

	// Args are fixed arguments passed with the action.
	Args map[string]any `json:"args,omitempty" toml:"args,omitempty" yaml:"args,omitempty"`

	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
}

// NewBinding creates a binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// Chord parses the binding's keys.
func (b Binding) Chord() (key.Event, error) {
	return key.Parse(b.Keys)
}

func (b Binding) clone() Binding {
	if b.Args != nil {
		b.Args = maps.Clone(b.Args)
	}
	return b
}

// Category groups bindings for display.
type Category struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by category in first-seen order.
func GroupByCategory(bindings []Binding) []Category {
	var out []Category
	index := make(map[string]int)
	for _, b := range bindings {
		name := b.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Category{Name: name})
		}
		out[i].Bindings = append(out[i].Bindings, b)
	}
	return out
}

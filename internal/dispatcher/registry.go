package dispatcher

import (
	"maps"
	"slices"
	"sync"

	"github.com/dshills/tierline/internal/dispatcher/handler"
)

// Registry holds handlers bound to one exact action name. It serves
// actions outside the built-in namespaces, such as user commands bound in
// a keymap file. Several handlers may share a name; the highest priority
// one runs.
type Registry struct {
	mu     sync.RWMutex
	byName map[string][]handler.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]handler.Handler)}
}

// Register adds h for name. Handlers of equal priority keep registration
// order.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append(r.byName[name], h)
	slices.SortStableFunc(list, func(a, b handler.Handler) int {
		return b.Priority() - a.Priority()
	})
	r.byName[name] = list
}

// Unregister drops every handler for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byName, name)
}

// Get returns the handler that runs for name, or nil.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if list := r.byName[name]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// Has reports whether any handler is bound to name.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Names returns the bound action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}

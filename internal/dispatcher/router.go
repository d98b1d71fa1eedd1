package dispatcher

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/tierline/internal/dispatcher/handler"
)

// Router sends "namespace.action" names to the handler registered for the
// namespace: "cursor" serves cursor.*, "tier" serves tier.* and so on.
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
	fallback   handler.Handler
}

// NewRouter creates a router with no namespaces.
func NewRouter() *Router {
	return &Router{namespaces: make(map[string]handler.NamespaceHandler)}
}

// RegisterNamespace installs h for namespace, replacing any previous one.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes the handler for namespace.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the handler for names no namespace claims.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route returns the handler for name, or nil. A namespace handler that
// does not list name loses it to the fallback.
func (r *Router) Route(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h := r.claim(name); h != nil {
		return handler.NewNamespaceAdapter(h)
	}
	return r.fallback
}

// CanRoute reports whether Route would find a handler.
func (r *Router) CanRoute(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.claim(name) != nil || r.fallback != nil
}

// claim returns the namespace handler accepting name. Callers hold mu.
func (r *Router) claim(name string) handler.NamespaceHandler {
	namespace, _, ok := strings.Cut(name, ".")
	if !ok {
		return nil
	}
	h := r.namespaces[namespace]
	if h == nil || !h.CanHandle(name) {
		return nil
	}
	return h
}

// HasNamespace reports whether namespace has a handler.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns the registered namespaces, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.namespaces))
}

// Actions lists every action the namespace handlers advertise, sorted.
// Handlers that do not implement handler.ActionLister are skipped.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, h := range r.namespaces {
		if l, ok := h.(handler.ActionLister); ok {
			out = append(out, l.Actions()...)
		}
	}
	slices.Sort(out)
	return out
}

package hooks

import (
	"strings"
	"sync"
)

// Registry stores callbacks registered against a controller identity at
// startup. It replaces class-keyed static extension events: host controllers
// declare an identity string and this module never inspects runtime types to
// match listeners.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string][]Binding
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string][]Binding),
	}
}

// Register adds a callback for the controller identity. Registration order
// is preserved when bindings are replayed at form initialisation.
func (r *Registry) Register(controllerID string, event Event, callback Callback) {
	if r == nil || callback == nil {
		return
	}
	id := strings.TrimSpace(controllerID)
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[id] = append(r.bindings[id], Binding{Event: event, Callback: callback})
}

// BindingsFor returns the bindings registered for the controller identity in
// registration order. The returned slice is a copy.
func (r *Registry) BindingsFor(controllerID string) []Binding {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings, ok := r.bindings[strings.TrimSpace(controllerID)]
	if !ok {
		return nil
	}
	return append([]Binding(nil), bindings...)
}

// Has reports whether any callback is registered for the identity.
func (r *Registry) Has(controllerID string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bindings[strings.TrimSpace(controllerID)]) > 0
}

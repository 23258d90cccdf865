package panel

import (
	"fmt"
	"sync"
)

// Registry keeps panels in registration order and guarantees that no two
// panels share an identifier.
type Registry struct {
	mu     sync.RWMutex
	panels []*Panel
	byID   map[string]*Panel
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*Panel),
	}
}

// Register appends panels. Duplicate identifiers return an error and leave
// the registry unchanged.
func (r *Registry) Register(panels ...*Panel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[string]struct{}, len(panels))
	for _, p := range panels {
		if p == nil {
			return fmt.Errorf("panel: panel is required")
		}
		if _, exists := r.byID[p.identifier]; exists {
			return fmt.Errorf("panel: identifier %q already registered", p.identifier)
		}
		if _, exists := pending[p.identifier]; exists {
			return fmt.Errorf("panel: identifier %q already registered", p.identifier)
		}
		pending[p.identifier] = struct{}{}
	}

	for _, p := range panels {
		r.byID[p.identifier] = p
		r.panels = append(r.panels, p)
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(panels ...*Panel) {
	if err := r.Register(panels...); err != nil {
		panic(err)
	}
}

// Lookup retrieves a panel by identifier.
func (r *Registry) Lookup(identifier string) (*Panel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[identifier]
	return p, ok
}

// List returns the panels in registration order. The slice is a copy.
func (r *Registry) List() []*Panel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Panel(nil), r.panels...)
}

// Len reports the number of registered panels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.panels)
}

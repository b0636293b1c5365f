package task

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps task kinds to their emitters. It is populated once during
// startup and read-only afterwards; the dispatcher only ever looks up.
type Registry struct {
	mu       sync.RWMutex
	emitters map[Kind]Emitter
}

// NewRegistry creates an empty emitter registry.
func NewRegistry() *Registry {
	return &Registry{
		emitters: make(map[Kind]Emitter),
	}
}

// Register adds an emitter for the given kind. Registering the same kind
// twice is a wiring mistake and returns an error.
func (r *Registry) Register(kind Kind, emitter Emitter) error {
	if emitter == nil {
		return fmt.Errorf("emitter for task %q cannot be nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emitters[kind]; exists {
		return fmt.Errorf("emitter for task %q already registered", kind)
	}

	r.emitters[kind] = emitter
	return nil
}

// Resolve returns the emitter registered for kind, if any.
func (r *Registry) Resolve(kind Kind) (Emitter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emitter, ok := r.emitters[kind]
	return emitter, ok
}

// Kinds returns the registered task kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.emitters))
	for kind := range r.emitters {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Package registry maps a component type name to its constructor and
// metadata for graph instantiation and introspection (spec.md §4.6).
package registry

import (
	"fmt"
	"sync"

	"github.com/ERnsTL/flowd-go/component"
)

// Entry pairs a component type's constructor with its advertised metadata.
type Entry struct {
	Constructor component.Constructor
	Metadata    component.Metadata
}

// Registry is a process-wide mapping from component-type name to Entry,
// mutated only at program startup and read-only thereafter (spec.md §4.6,
// §5 "Registry: immutable after startup; safe to read without locking").
// The mutex below only ever sees contention during the init()-driven
// registration burst at process start.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds name to the registry. Registering the same name twice is
// a programmer error (two components claiming the same type name) and
// panics, matching the teacher corpus's convention of failing loudly at
// init() time rather than silently shadowing.
func (r *Registry) Register(name string, ctor component.Constructor, meta component.Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("registry: component type %q already registered", name))
	}
	r.entries[name] = Entry{Constructor: ctor, Metadata: meta}
	r.order = append(r.order, name)
}

// Lookup returns the entry registered under name, if any.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns every registered entry in registration order, for
// deterministic component/list enumeration (spec.md §4.6).
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Default is the process-wide registry that components/register.go
// populates from init() functions, the idiomatic Go equivalent of the
// teacher's package-level constructor registration.
var Default = New()

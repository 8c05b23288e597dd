// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new Renderer with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Renderer, error)

// RegistryEntry represents a registered render backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 10: pure software backends
	Priority int

	// Factory creates renderer instances.
	Factory Factory

	// Available reports if the backend is usable on this system.
	// Nil means always available.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered render backends. Backends register
// themselves from an init function so that importing a backend package
// is all it takes to make it selectable.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry. Most code should use the
// global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a backend to the global registry. Registering a name
// that already exists replaces the previous entry.
func Register(e RegistryEntry) {
	globalRegistry.Register(e)
}

// List returns all registered backend names sorted by priority
// (highest first).
func List() []string { return globalRegistry.List() }

// AvailableBackends returns the names of all available backends sorted
// by priority.
func AvailableBackends() []string { return globalRegistry.AvailableBackends() }

// New creates a renderer using a specific named backend.
func New(name string, opts Options) (Renderer, error) {
	return globalRegistry.New(name, opts)
}

// Best creates a renderer using the highest-priority available backend.
func Best(opts Options) (Renderer, error) {
	return globalRegistry.Best(opts)
}

// Register adds a backend to the registry.
func (r *Registry) Register(e RegistryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Name] = &e
}

// byPriority returns the entries sorted highest priority first, names
// as tiebreak.
func (r *Registry) byPriority() []*RegistryEntry {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for _, e := range r.byPriority() {
		names = append(names, e.Name)
	}
	return names
}

// AvailableBackends returns names of all available backends sorted by
// priority.
func (r *Registry) AvailableBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for _, e := range r.byPriority() {
		if e.Available == nil || e.Available() {
			names = append(names, e.Name)
		}
	}
	return names
}

// New creates a renderer using a specific named backend.
func (r *Registry) New(name string, opts Options) (Renderer, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if e.Available != nil && !e.Available() {
		return nil, fmt.Errorf("render: backend %q not available on this system", name)
	}
	return e.Factory(opts)
}

// Best creates a renderer using the highest-priority available backend,
// falling through to lower priorities when a factory fails.
func (r *Registry) Best(opts Options) (Renderer, error) {
	r.mu.RLock()
	entries := r.byPriority()
	r.mu.RUnlock()

	var firstErr error
	for _, e := range entries {
		if e.Available != nil && !e.Available() {
			continue
		}
		renderer, err := e.Factory(opts)
		if err == nil {
			return renderer, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("render: backend %q: %w", e.Name, err)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNoBackend
}

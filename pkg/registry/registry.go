package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// Registry maps names to items. Names are trimmed and compared without
// regard to case, so "Regex" in a configuration file finds "regex".
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds an item. Empty and already registered names are errors.
func (r *Registry[T]) Register(name string, item T) error {
	key := normalize(name)
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", key)
	}
	r.items[key] = item
	return nil
}

// Get returns the item registered under name. The error lists the names
// that are registered.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	item, exists := r.items[normalize(name)]
	r.mu.RUnlock()

	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("known", r.Names())
	}
	return item, nil
}

// Has reports whether name is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.items[normalize(name)]
	return exists
}

// Names returns the registered names, sorted
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered items
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// MustRegister registers an item and panics on failure. Meant for init
// functions, where a failure is a programming error.
func MustRegister[T any](r *Registry[T], name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

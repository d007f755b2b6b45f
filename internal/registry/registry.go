// Package registry manages the named tag store backends.
package registry

import (
	"maps"
	"slices"
	"sync"

	"github.com/simonhull/imagemeta/internal/tagstore"
)

// Factory creates an opener for a backend. Factories may start external
// processes, so they are only invoked on first use.
type Factory func() (tagstore.Opener, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register registers a backend factory under name.
// This is called by backend packages during initialization (init functions).
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Get returns the factory registered under name.
// Returns nil if no backend is registered with that name.
func Get(name string) Factory {
	mu.RLock()
	defer mu.RUnlock()
	return factories[name]
}

// Names returns the registered backend names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

package store

import (
	"fmt"
	"sort"
	"sync"

	urlutil "github.com/law-makers/pricewatch/internal/utils/url"
)

// Registry maps store identifiers to adapters
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding the given adapters
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in store adapter
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewAmazon(),
		NewNewegg(),
		NewBHPhoto(),
		NewBestBuy(),
		NewCentralComputer(),
		NewGameNerdz(),
		NewWalmart(),
		NewMicrocenter(),
	)
}

// Register adds or replaces the adapter for a.Name()
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Name()] = a
}

// Lookup returns the adapter registered under a store identifier
func (r *Registry) Lookup(store string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[store]
	return a, ok
}

// Resolve derives the store identifier from rawURL and returns its adapter
func (r *Registry) Resolve(rawURL string) (Adapter, error) {
	id, err := urlutil.StoreID(rawURL)
	if err != nil {
		return nil, &UnknownStoreError{Store: "", URL: rawURL}
	}
	a, ok := r.Lookup(id)
	if !ok {
		return nil, &UnknownStoreError{Store: id, URL: rawURL}
	}
	return a, nil
}

// Stores lists registered store identifiers in sorted order
func (r *Registry) Stores() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String is used in debug logs
func (r *Registry) String() string {
	return fmt.Sprintf("Registry%v", r.Stores())
}

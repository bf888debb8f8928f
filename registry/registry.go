package registry

import (
	"sync"

	"github.com/kbukum/cdnkit/errors"
	"github.com/kbukum/cdnkit/resolver"
)

// Registry manages named CDN providers in registration order.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	resolvers map[string]resolver.Resolver
}

// New creates a new empty Registry.
func New() *Registry {
	return &Registry{
		resolvers: make(map[string]resolver.Resolver),
	}
}

// NewDefault creates a Registry seeded with the built-in providers in
// priority order (jsdelivr, unpkg, cdnjs, skypack).
func NewDefault() *Registry {
	r := New()
	for _, b := range resolver.Builtins() {
		_ = r.Register(b.Name, b.Resolver)
	}
	return r
}

// Register adds a provider or replaces an existing one. Replacing keeps the
// provider's original position in the fallback order.
func (r *Registry) Register(name string, res resolver.Resolver) error {
	if res == nil {
		return errors.InvalidArgument("resolver", "must not be nil")
	}
	if f, ok := res.(resolver.Func); ok && f == nil {
		return errors.InvalidArgument("resolver", "must not be a nil function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resolvers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.resolvers[name] = res
	return nil
}

// Unregister removes a provider. Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.resolvers[name]; !exists {
		return
	}
	delete(r.resolvers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup returns the resolver registered under name.
func (r *Registry) Lookup(name string) (resolver.Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resolvers[name]
	return res, ok
}

// Names returns the provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

package host

import (
	"slices"
	"sync"

	domcf "github.com/kailas-cloud/customfields/internal/domain/customfield"
	"github.com/kailas-cloud/customfields/internal/usecase/registry"
)

var (
	_ registry.EntityKinds = (*Registry)(nil)
	_ registry.ViewKinds   = (*Registry)(nil)
)

// Registry is the lookup table from classes and targets to host handles.
type Registry struct {
	mu       sync.RWMutex
	entities map[domcf.EntityClass]*EntityKind
	views    map[domcf.ViewTarget]*ViewKind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[domcf.EntityClass]*EntityKind),
		views:    make(map[domcf.ViewTarget]*ViewKind),
	}
}

// NewStandardRegistry creates a registry with every supported entity class
// and view target.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	for _, c := range domcf.Classes {
		r.AddEntityKind(NewEntityKind(c))
	}
	for _, t := range domcf.Targets {
		r.AddViewKind(NewViewKind(t))
	}
	return r
}

// AddEntityKind registers or replaces an entity kind.
func (r *Registry) AddEntityKind(k *EntityKind) {
	r.mu.Lock()
	r.entities[k.Class()] = k
	r.mu.Unlock()
}

// AddViewKind registers or replaces a view kind.
func (r *Registry) AddViewKind(k *ViewKind) {
	r.mu.Lock()
	r.views[k.Target()] = k
	r.mu.Unlock()
}

// EntityKind returns the concrete entity kind for class, or nil.
func (r *Registry) EntityKind(class domcf.EntityClass) *EntityKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entities[class]
}

// ViewKind returns the concrete view kind for target, or nil.
func (r *Registry) ViewKind(target domcf.ViewTarget) *ViewKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[target]
}

// ViewTargets returns the registered view targets in sorted order.
func (r *Registry) ViewTargets() []domcf.ViewTarget {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domcf.ViewTarget, 0, len(r.views))
	for t := range r.views {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// ResolveEntityKind implements registry.EntityKinds.
func (r *Registry) ResolveEntityKind(class domcf.EntityClass) (registry.EntityKind, bool) {
	if k := r.EntityKind(class); k != nil {
		return k, true
	}
	return nil, false
}

// ResolveViewKind implements registry.ViewKinds.
func (r *Registry) ResolveViewKind(target domcf.ViewTarget) (registry.ViewKind, bool) {
	if k := r.ViewKind(target); k != nil {
		return k, true
	}
	return nil, false
}

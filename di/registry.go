package di

import (
	"sync"
)

// Registry is an append-only list of singleton descriptors that packages
// contribute before any container exists, typically from init functions.
//
// It is:
// - safe for concurrent registration
// - read by copying, a collection built from it is independent
//
// Expected usage:
//
//	func init() {
//		di.RegisterSingleton(StorageService, newStorage, true)
//	}
//
//	svc := di.NewInstantiationService(di.NewServiceCollectionFromRegistry())
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a descriptor for ctor under id and returns the registry
// for chaining. A later registration of the same id wins when a collection
// is built.
func Register[T any](r *Registry, id ServiceID[T], ctor *Constructor[T], supportsDelayedInstantiation bool) *Registry {
	keyOf(id)
	desc := NewDescriptor(ctor, nil, supportsDelayedInstantiation)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{ID: id, Value: desc})
	return r
}

// Get returns the descriptor registered last for id.
func (r *Registry) Get(id ServiceIdentifier) (SyncDescriptor, bool) {
	k := keyOf(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ID.identity() == k {
			return r.entries[i].Value.(SyncDescriptor), true
		}
	}
	return nil, false
}

// MustGet returns the descriptor for id or panics with *MissingServiceError.
// Useful in tests where a missing registration should fail fast.
func (r *Registry) MustGet(id ServiceIdentifier) SyncDescriptor {
	d, ok := r.Get(id)
	if !ok {
		panic(&MissingServiceError{Service: id.String(), Requester: "registry"})
	}
	return d
}

// Len returns the number of registrations, duplicates included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns every registration in order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Collection returns a new collection holding every registered descriptor,
// followed by extra.
func (r *Registry) Collection(extra ...Entry) *ServiceCollection {
	c := NewServiceCollection(r.Entries()...)
	for _, e := range extra {
		c.Set(e.ID, e.Value)
	}
	return c
}

// singletons is the process-wide registry behind RegisterSingleton. Like the
// identifier table it lives for the whole process.
var singletons = NewRegistry()

// RegisterSingleton adds ctor under id to the process-wide registry.
func RegisterSingleton[T any](id ServiceID[T], ctor *Constructor[T], supportsDelayedInstantiation bool) {
	Register(singletons, id, ctor, supportsDelayedInstantiation)
}

// SingletonDescriptors returns the process-wide registrations in order.
func SingletonDescriptors() []Entry {
	return singletons.Entries()
}

// NewServiceCollectionFromRegistry seeds a collection from the process-wide
// registry, then applies extra.
func NewServiceCollectionFromRegistry(extra ...Entry) *ServiceCollection {
	return singletons.Collection(extra...)
}

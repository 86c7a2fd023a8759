package di

// Entry is one identifier binding used to seed a ServiceCollection.
type Entry struct {
	ID    ServiceIdentifier
	Value any
}

// Pair builds an Entry. It reads better than a struct literal in long lists:
//
//	di.NewServiceCollection(
//		di.Pair(LogService, logger),
//		di.Pair(StorageService, di.Describe(newStorage)),
//	)
func Pair(id ServiceIdentifier, value any) Entry {
	return Entry{ID: id, Value: value}
}

// ServiceCollection maps identifiers to either a live instance or a
// SyncDescriptor.
//
// The collection is live: a Set after consumers were built changes what later
// lookups see, but never touches values already injected into constructed
// components. Entries are never removed.
//
// ServiceCollection is not safe for concurrent use.
type ServiceCollection struct {
	entries map[*identity]any
	order   []ServiceIdentifier
}

// NewServiceCollection returns a collection seeded with entries, in order.
func NewServiceCollection(entries ...Entry) *ServiceCollection {
	c := &ServiceCollection{entries: make(map[*identity]any, len(entries))}
	for _, e := range entries {
		c.Set(e.ID, e.Value)
	}
	return c
}

// Set binds id to an instance or descriptor and returns the previous binding
// (nil if there was none).
//
// It panics with ErrSelfRegistration if value is the collection itself or an
// InstantiationService that owns it.
func (c *ServiceCollection) Set(id ServiceIdentifier, instanceOrDescriptor any) any {
	k := keyOf(id)
	if owner, ok := instanceOrDescriptor.(interface{ collection() *ServiceCollection }); ok && owner.collection() == c {
		panic(ErrSelfRegistration)
	}

	prev, existed := c.entries[k]
	if !existed {
		c.order = append(c.order, id)
	}
	c.entries[k] = instanceOrDescriptor
	return prev
}

// Has reports whether id is bound, even to nil.
func (c *ServiceCollection) Has(id ServiceIdentifier) bool {
	_, ok := c.entries[keyOf(id)]
	return ok
}

// Get returns the raw binding for id: an instance or a SyncDescriptor. Use
// IsDescriptor to tell them apart.
func (c *ServiceCollection) Get(id ServiceIdentifier) (any, bool) {
	v, ok := c.entries[keyOf(id)]
	return v, ok
}

// Len returns the number of bound identifiers.
func (c *ServiceCollection) Len() int { return len(c.entries) }

// Range calls fn for every binding in first-insertion order until fn
// returns false.
func (c *ServiceCollection) Range(fn func(id ServiceIdentifier, instanceOrDescriptor any) bool) {
	for _, id := range c.order {
		if !fn(id, c.entries[id.identity()]) {
			return
		}
	}
}

func (c *ServiceCollection) collection() *ServiceCollection { return c }

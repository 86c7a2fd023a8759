package di

// recipe is the untyped view of a Constructor the engine works with once a
// descriptor has been stored in a collection and its T is no longer known.
type recipe interface {
	recipeName() string
	recipeArity() int
	recipeDeps() []Dependency
	buildAny(args []any) (any, error)
}

func (c *Constructor[T]) recipeName() string { return c.name }
func (c *Constructor[T]) recipeArity() int { return c.arity }
func (c *Constructor[T]) recipeDeps() []Dependency { return c.deps }

func (c *Constructor[T]) buildAny(args []any) (any, error) {
	return c.build(args)
}

// SyncDescriptor is the untyped view of a *Descriptor stored in a
// ServiceCollection.
type SyncDescriptor interface {
	ConstructorName() string
	StaticArguments() []any
	SupportsDelayedInstantiation() bool

	recipe() recipe
	fixed() []any
}

// Target is what CreateInstance accepts: a *Constructor[T] or a *Descriptor[T].
type Target[T any] interface {
	constructor() *Constructor[T]
	staticArguments() []any
}

// Descriptor is an inert recipe: "build T with ctor, passing these fixed
// leading arguments; injected services fill the rest". It performs no work
// itself and is immutable once created.
type Descriptor[T any] struct {
	ctor    *Constructor[T]
	static  []any
	delayed bool
}

// NewDescriptor creates a descriptor.
//
// supportsDelayedInstantiation allows the container to postpone building the
// service until a consumer asks a *Lazy handle for its value.
func NewDescriptor[T any](ctor *Constructor[T], staticArgs []any, supportsDelayedInstantiation bool) *Descriptor[T] {
	if ctor == nil {
		panic(ErrNilTarget)
	}
	return &Descriptor[T]{
		ctor:    ctor,
		static:  append([]any(nil), staticArgs...),
		delayed: supportsDelayedInstantiation,
	}
}

// Describe is NewDescriptor without delayed instantiation.
func Describe[T any](ctor *Constructor[T], staticArgs ...any) *Descriptor[T] {
	return NewDescriptor(ctor, staticArgs, false)
}

// Bind returns a new descriptor whose fixed arguments are d's followed by args.
func (d *Descriptor[T]) Bind(args ...any) *Descriptor[T] {
	static := make([]any, 0, len(d.static)+len(args))
	static = append(static, d.static...)
	static = append(static, args...)
	return &Descriptor[T]{ctor: d.ctor, static: static, delayed: d.delayed}
}

// Constructor returns the wrapped constructor.
func (d *Descriptor[T]) Constructor() *Constructor[T] { return d.ctor }

// ConstructorName implements SyncDescriptor.
func (d *Descriptor[T]) ConstructorName() string { return d.ctor.name }

// StaticArguments implements SyncDescriptor. The returned slice is a copy.
func (d *Descriptor[T]) StaticArguments() []any {
	return append([]any(nil), d.static...)
}

// SupportsDelayedInstantiation implements SyncDescriptor.
func (d *Descriptor[T]) SupportsDelayedInstantiation() bool { return d.delayed }

func (d *Descriptor[T]) recipe() recipe { return d.ctor }
func (d *Descriptor[T]) fixed() []any { return d.static }
func (d *Descriptor[T]) constructor() *Constructor[T] { return d.ctor }
func (d *Descriptor[T]) staticArguments() []any { return d.static }

// IsDescriptor reports whether a raw collection value is a descriptor.
func IsDescriptor(v any) bool {
	_, ok := v.(SyncDescriptor)
	return ok
}

package di

// Dependency is one annotated constructor parameter: "the parameter at Index
// needs the service ID".
type Dependency struct {
	ID       ServiceIdentifier
	Index    int
	Optional bool

	// Lazy reports that the parameter receives a *Lazy handle instead of the
	// service itself.
	Lazy bool

	// wrap turns a resolver into the typed *Lazy handle for Lazy parameters.
	wrap func(resolve func() (any, error)) any
}

// Constructor is a build function plus the list of services it declares.
//
// The dependency list is the metadata the container reads when it builds the
// argument list. It lives on the Constructor value itself, so one Constructor
// should be created per concrete type, typically as a package-level variable:
//
//	var newWorkbench = di.Ctor2("Workbench", NewWorkbench).
//		Inject(0, StorageService).
//		Optional(1, LogService)
//
// Constructors are meant to be fully annotated before first use and are not
// safe for concurrent mutation.
type Constructor[T any] struct {
	name  string
	arity int
	deps  []Dependency
	build func(args []any) (T, error)
}

// NewConstructor wraps a positional build function.
//
// arity is the number of parameters build expects; a negative arity disables
// the index range check for variadic builders. build receives the fixed
// arguments followed by the injected services at their declared indices; any
// index covered by neither is nil.
func NewConstructor[T any](name string, arity int, build func(args []any) (T, error)) *Constructor[T] {
	if build == nil {
		panic(ErrNilTarget)
	}
	return &Constructor[T]{name: name, arity: arity, build: build}
}

// Name returns the constructor name used in errors and logs.
func (c *Constructor[T]) Name() string { return c.name }

// Arity returns the declared parameter count (negative when unknown).
func (c *Constructor[T]) Arity() int { return c.arity }

// Dependencies returns a copy of the declared dependencies in declaration order.
func (c *Constructor[T]) Dependencies() []Dependency {
	out := make([]Dependency, len(c.deps))
	copy(out, c.deps)
	return out
}

// Inject declares that the parameter at index requires id.
func (c *Constructor[T]) Inject(index int, id ServiceIdentifier) *Constructor[T] {
	c.declare(Dependency{ID: id, Index: index})
	return c
}

// Optional declares that the parameter at index receives id when it is bound
// and nil otherwise.
func (c *Constructor[T]) Optional(index int, id ServiceIdentifier) *Constructor[T] {
	c.declare(Dependency{ID: id, Index: index, Optional: true})
	return c
}

// InjectLazy declares that the parameter at index receives a *Lazy[S] handle
// for id. It is a function rather than a method because it needs the service
// type S.
func InjectLazy[S, T any](c *Constructor[T], index int, id ServiceID[S]) *Constructor[T] {
	c.declare(lazyDependency(id, index, false))
	return c
}

// OptionalLazy is InjectLazy for a service that may be absent, in which case
// the parameter receives a nil handle.
func OptionalLazy[S, T any](c *Constructor[T], index int, id ServiceID[S]) *Constructor[T] {
	c.declare(lazyDependency(id, index, true))
	return c
}

func lazyDependency[S any](id ServiceID[S], index int, optional bool) Dependency {
	return Dependency{
		ID:       id,
		Index:    index,
		Optional: optional,
		Lazy:     true,
		wrap: func(resolve func() (any, error)) any {
			return newLazy[S](id, resolve)
		},
	}
}

func (c *Constructor[T]) declare(d Dependency) {
	keyOf(d.ID)
	if d.Index < 0 || (c.arity >= 0 && d.Index >= c.arity) {
		panic(&ParameterRangeError{Constructor: c.name, Index: d.Index, Arity: c.arity})
	}
	for _, existing := range c.deps {
		if existing.Index == d.Index {
			panic(&DuplicateParameterError{Constructor: c.name, Index: d.Index})
		}
	}
	c.deps = append(c.deps, d)
}

// constructor and staticArguments make *Constructor a Target.
func (c *Constructor[T]) constructor() *Constructor[T] { return c }
func (c *Constructor[T]) staticArguments() []any { return nil }

// ---------------------------------------------------------------------------
// Typed adapters
// ---------------------------------------------------------------------------

// argAt converts args[i] to A. A missing or nil argument yields the zero A.
func argAt[A any](ctor string, args []any, i int) (A, error) {
	var zero A
	if i >= len(args) || args[i] == nil {
		return zero, nil
	}
	v, ok := args[i].(A)
	if !ok {
		return zero, &ArgumentTypeError{
			Constructor: ctor,
			Index:       i,
			Want:        typeOf[A]().String(),
			Got:         typeName(args[i]),
		}
	}
	return v, nil
}

// Ctor0 adapts a parameterless constructor.
func Ctor0[T any](name string, fn func() (T, error)) *Constructor[T] {
	return NewConstructor(name, 0, func([]any) (T, error) { return fn() })
}

// Ctor1 adapts a one-parameter constructor.
func Ctor1[A1, T any](name string, fn func(A1) (T, error)) *Constructor[T] {
	return NewConstructor(name, 1, func(args []any) (T, error) {
		var zero T
		a1, err := argAt[A1](name, args, 0)
		if err != nil {
			return zero, err
		}
		return fn(a1)
	})
}

// Ctor2 adapts a two-parameter constructor.
func Ctor2[A1, A2, T any](name string, fn func(A1, A2) (T, error)) *Constructor[T] {
	return NewConstructor(name, 2, func(args []any) (T, error) {
		var zero T
		a1, err := argAt[A1](name, args, 0)
		if err != nil {
			return zero, err
		}
		a2, err := argAt[A2](name, args, 1)
		if err != nil {
			return zero, err
		}
		return fn(a1, a2)
	})
}

// Ctor3 adapts a three-parameter constructor.
func Ctor3[A1, A2, A3, T any](name string, fn func(A1, A2, A3) (T, error)) *Constructor[T] {
	return NewConstructor(name, 3, func(args []any) (T, error) {
		var zero T
		a1, err := argAt[A1](name, args, 0)
		if err != nil {
			return zero, err
		}
		a2, err := argAt[A2](name, args, 1)
		if err != nil {
			return zero, err
		}
		a3, err := argAt[A3](name, args, 2)
		if err != nil {
			return zero, err
		}
		return fn(a1, a2, a3)
	})
}

// Ctor4 adapts a four-parameter constructor.
func Ctor4[A1, A2, A3, A4, T any](name string, fn func(A1, A2, A3, A4) (T, error)) *Constructor[T] {
	return NewConstructor(name, 4, func(args []any) (T, error) {
		var zero T
		a1, err := argAt[A1](name, args, 0)
		if err != nil {
			return zero, err
		}
		a2, err := argAt[A2](name, args, 1)
		if err != nil {
			return zero, err
		}
		a3, err := argAt[A3](name, args, 2)
		if err != nil {
			return zero, err
		}
		a4, err := argAt[A4](name, args, 3)
		if err != nil {
			return zero, err
		}
		return fn(a1, a2, a3, a4)
	})
}

// Ctor5 adapts a five-parameter constructor. Use NewConstructor for more.
func Ctor5[A1, A2, A3, A4, A5, T any](name string, fn func(A1, A2, A3, A4, A5) (T, error)) *Constructor[T] {
	return NewConstructor(name, 5, func(args []any) (T, error) {
		var zero T
		a1, err := argAt[A1](name, args, 0)
		if err != nil {
			return zero, err
		}
		a2, err := argAt[A2](name, args, 1)
		if err != nil {
			return zero, err
		}
		a3, err := argAt[A3](name, args, 2)
		if err != nil {
			return zero, err
		}
		a4, err := argAt[A4](name, args, 3)
		if err != nil {
			return zero, err
		}
		a5, err := argAt[A5](name, args, 4)
		if err != nil {
			return zero, err
		}
		return fn(a1, a2, a3, a4, a5)
	})
}

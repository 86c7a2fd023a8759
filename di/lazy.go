package di

// Lazy is a handle to a service whose construction may be postponed until the
// first call to Value.
//
// A constructor receives a *Lazy when it declares the parameter with
// InjectLazy. If the binding is a descriptor created with
// supportsDelayedInstantiation, nothing is built until Value is called;
// otherwise the service is resolved while the consumer is being built and the
// handle only carries the result.
//
// A nil *Lazy, injected for an absent optional service, yields the zero T.
type Lazy[T any] struct {
	id      ServiceID[T]
	resolve func() (any, error)

	done bool
	val  T
}

func newLazy[T any](id ServiceID[T], resolve func() (any, error)) *Lazy[T] {
	return &Lazy[T]{id: id, resolve: resolve}
}

// ID returns the identifier the handle resolves.
func (l *Lazy[T]) ID() ServiceID[T] { return l.id }

// Resolved reports whether Value has already produced the service.
func (l *Lazy[T]) Resolved() bool { return l != nil && l.done }

// Value builds the service on first use and returns the same value afterwards.
// A failed attempt is not cached, so a later call retries.
func (l *Lazy[T]) Value() (T, error) {
	var zero T
	if l == nil {
		return zero, nil
	}
	if l.done {
		return l.val, nil
	}

	raw, err := l.resolve()
	if err != nil {
		return zero, err
	}
	v, err := assertService[T](l.id.String(), raw)
	if err != nil {
		return zero, err
	}

	l.val, l.done, l.resolve = v, true, nil
	return v, nil
}

// MustValue is Value that panics on error.
func (l *Lazy[T]) MustValue() T {
	v, err := l.Value()
	if err != nil {
		panic(err)
	}
	return v
}

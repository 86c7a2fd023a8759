package di

// ServicesAccessor looks services up for the duration of one InvokeFunction
// call. Every lookup goes through the same resolution as constructor
// injection, one identifier at a time.
//
// Once the call returns, normally, with an error or by panicking, every
// method returns ErrAccessorExpired.
type ServicesAccessor interface {
	// Get returns the service bound to id, building it if it is still a
	// descriptor. A missing binding is a *MissingServiceError.
	Get(id ServiceIdentifier) (any, error)

	// GetOptional is Get that returns nil for a missing binding.
	GetOptional(id ServiceIdentifier) (any, error)
}

const accessorRequester = "invokeFunction"

type accessor struct {
	svc     *InstantiationService
	expired bool
}

func (a *accessor) Get(id ServiceIdentifier) (any, error) {
	return a.get(id, false)
}

func (a *accessor) GetOptional(id ServiceIdentifier) (any, error) {
	return a.get(id, true)
}

func (a *accessor) get(id ServiceIdentifier, optional bool) (any, error) {
	if a.expired {
		return nil, ErrAccessorExpired
	}
	v, found, err := a.svc.resolve(id)
	if err != nil {
		return nil, err
	}
	if !found && !optional {
		return nil, &MissingServiceError{Service: id.String(), Requester: accessorRequester}
	}
	return v, nil
}

// Get returns the service bound to id as a T.
func Get[T any](a ServicesAccessor, id ServiceID[T]) (T, error) {
	raw, err := a.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertService[T](id.String(), raw)
}

// GetOptional returns the service bound to id as a T, or the zero T when id
// is not bound.
func GetOptional[T any](a ServicesAccessor, id ServiceID[T]) (T, error) {
	raw, err := a.GetOptional(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertService[T](id.String(), raw)
}

// MustGet is Get that panics on error.
func MustGet[T any](a ServicesAccessor, id ServiceID[T]) T {
	v, err := Get(a, id)
	if err != nil {
		panic(err)
	}
	return v
}

// GetLazy returns a handle that looks id up through a on its first Value
// call. The handle has to be resolved before the accessor expires; a value
// obtained earlier stays available afterwards.
func GetLazy[T any](a ServicesAccessor, id ServiceID[T]) *Lazy[T] {
	return newLazy(id, func() (any, error) { return a.Get(id) })
}

// assertService converts a raw binding to T. A nil binding is the zero T.
func assertService[T any](name string, raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, &ServiceTypeError{Service: name, Want: typeOf[T]().String(), Got: typeName(raw)}
	}
	return v, nil
}

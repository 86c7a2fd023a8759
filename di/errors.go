package di

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrAccessorExpired is returned by a ServicesAccessor used after the
	// InvokeFunction call that created it has returned.
	ErrAccessorExpired = errors.New("di: service accessor used after its invocation ended")

	// ErrSelfRegistration is returned (or panicked with) when a container,
	// collection or disposable store is registered into itself.
	ErrSelfRegistration = errors.New("di: cannot register a container on itself")

	// ErrServiceDisposed is returned by an InstantiationService after Dispose.
	ErrServiceDisposed = errors.New("di: instantiation service is disposed")

	// ErrNilTarget is returned when CreateInstance receives a nil constructor
	// or descriptor.
	ErrNilTarget = errors.New("di: nil constructor or descriptor")

	// ErrInvalidIdentifier is panicked when an identifier is created with an
	// empty name, or a zero ServiceID is used as a collection key.
	ErrInvalidIdentifier = errors.New("di: invalid service identifier")
)

// MissingServiceError is returned when a required dependency has no binding
// in the container chain.
type MissingServiceError struct {
	// Service is the identifier name that could not be found.
	Service string

	// Requester is the constructor (or accessor) that asked for it.
	Requester string
}

// Error implements the error interface.
func (e *MissingServiceError) Error() string {
	// Example: di: unknown service "storage" requested by "Workbench"
	return "di: unknown service " + strconv.Quote(e.Service) + " requested by " + strconv.Quote(e.Requester)
}

// CyclicDependencyError is returned when resolving a descriptor would re-enter
// a service that is still under construction.
//
// Path lists the graph keys of the cycle, starting and ending with the same key.
type CyclicDependencyError struct {
	Path []string
}

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	// Example: di: cyclic dependency between services: a -> b -> a
	return "di: cyclic dependency between services: " + strings.Join(e.Path, " -> ")
}

// DuplicateParameterError is panicked by Constructor.Inject and friends when a
// second dependency is declared at an index that already has one.
type DuplicateParameterError struct {
	Constructor string
	Index       int
}

// Error implements the error interface.
func (e *DuplicateParameterError) Error() string {
	return "di: constructor " + strconv.Quote(e.Constructor) +
		" declares more than one service at parameter " + strconv.Itoa(e.Index)
}

// ParameterRangeError is panicked when a dependency is declared at an index
// outside of the constructor's parameter list.
type ParameterRangeError struct {
	Constructor string
	Index       int
	Arity       int
}

// Error implements the error interface.
func (e *ParameterRangeError) Error() string {
	return "di: constructor " + strconv.Quote(e.Constructor) + " has " + strconv.Itoa(e.Arity) +
		" parameters, cannot declare a service at index " + strconv.Itoa(e.Index)
}

// ArgumentTypeError is returned when a positional argument cannot be converted
// to the parameter type a typed constructor expects.
type ArgumentTypeError struct {
	Constructor string
	Index       int

	// Want is the parameter type, Got the dynamic type of the supplied value.
	Want string
	Got  string
}

// Error implements the error interface.
func (e *ArgumentTypeError) Error() string {
	// Example: di: constructor "Workbench" parameter 1 wants di.Logger, got string
	return "di: constructor " + strconv.Quote(e.Constructor) + " parameter " + strconv.Itoa(e.Index) +
		" wants " + e.Want + ", got " + e.Got
}

// ConstructionError wraps an error returned by a constructor's build function.
type ConstructionError struct {
	Constructor string
	Err         error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return "di: constructing " + strconv.Quote(e.Constructor) + ": " + e.Err.Error()
}

// Unwrap returns the constructor's own error.
func (e *ConstructionError) Unwrap() error { return e.Err }

// ServiceTypeError is returned by the typed accessor helpers when a binding
// holds a value of a different type than the identifier promises.
type ServiceTypeError struct {
	Service string
	Want    string
	Got     string
}

// Error implements the error interface.
func (e *ServiceTypeError) Error() string {
	return "di: service " + strconv.Quote(e.Service) + " has wrong type (" + e.Got + "), want " + e.Want
}

// IdentifierTypeError is panicked by CreateDecorator when a name that is
// already interned is requested with a different type parameter.
type IdentifierTypeError struct {
	Name string
	Have string
	Want string
}

// Error implements the error interface.
func (e *IdentifierTypeError) Error() string {
	return "di: service identifier " + strconv.Quote(e.Name) + " already created for " + e.Have +
		", requested as " + e.Want
}

// ArityError is returned when more fixed arguments are supplied than the
// constructor has parameters left after its injected services.
type ArityError struct {
	Constructor string
	Arity       int
	Injected    int
	Got         int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return "di: constructor " + strconv.Quote(e.Constructor) + " takes " + strconv.Itoa(e.Arity) +
		" parameters (" + strconv.Itoa(e.Injected) + " injected), got " + strconv.Itoa(e.Got) + " fixed arguments"
}

package di

import (
	"reflect"
	"sort"
	"sync"
)

// identity is the process-wide token behind every ServiceID. Exactly one
// identity exists per name.
type identity struct {
	name string
	typ  reflect.Type
}

// ServiceIdentifier is the untyped view of a service token. It keys the
// ServiceCollection and names the service in errors and graph nodes.
//
// The interface is sealed: the only implementations are ServiceID values
// returned by CreateDecorator.
type ServiceIdentifier interface {
	String() string
	identity() *identity
}

// ServiceID identifies a service of type T.
//
// ServiceID values are comparable; two values obtained from CreateDecorator
// with the same name are equal.
type ServiceID[T any] struct {
	id *identity
}

// String returns the name the identifier was created with.
func (s ServiceID[T]) String() string {
	if s.id == nil {
		return ""
	}
	return s.id.name
}

func (s ServiceID[T]) identity() *identity { return s.id }

// serviceIDs interns identities by name. It is populated lazily by
// CreateDecorator and never shrinks for the lifetime of the process.
var serviceIDs = struct {
	sync.Mutex
	byName map[string]*identity
}{byName: make(map[string]*identity)}

// CreateDecorator returns the identifier for name, creating it on first use.
//
// Identifiers are interned process-wide, so every call with the same name
// returns an equal value regardless of the call site:
//
//	var StorageService = di.CreateDecorator[Storage]("storageService")
//
// It panics with ErrInvalidIdentifier for an empty name and with
// *IdentifierTypeError if name was already created for a different T.
func CreateDecorator[T any](name string) ServiceID[T] {
	if name == "" {
		panic(ErrInvalidIdentifier)
	}
	typ := typeOf[T]()

	serviceIDs.Lock()
	defer serviceIDs.Unlock()

	if id, ok := serviceIDs.byName[name]; ok {
		if id.typ != typ {
			panic(&IdentifierTypeError{Name: name, Have: id.typ.String(), Want: typ.String()})
		}
		return ServiceID[T]{id: id}
	}

	id := &identity{name: name, typ: typ}
	serviceIDs.byName[name] = id
	return ServiceID[T]{id: id}
}

// Identifiers returns the names of every identifier created so far, sorted.
func Identifiers() []string {
	serviceIDs.Lock()
	defer serviceIDs.Unlock()

	out := make([]string, 0, len(serviceIDs.byName))
	for name := range serviceIDs.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// keyOf returns the identity behind id, panicking on a zero identifier.
func keyOf(id ServiceIdentifier) *identity {
	if id == nil {
		panic(ErrInvalidIdentifier)
	}
	k := id.identity()
	if k == nil {
		panic(ErrInvalidIdentifier)
	}
	return k
}

// typeOf returns the static type T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// typeName describes the dynamic type of v for error messages.
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

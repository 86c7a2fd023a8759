package di

import (
	"strconv"

	"github.com/sghaida/syncdi/graph"
)

// InstantiationServiceID resolves to the InstantiationService performing the
// lookup. It never needs to be bound.
var InstantiationServiceID = CreateDecorator[*InstantiationService]("instantiationService")

// Option configures an InstantiationService.
type Option func(*InstantiationService)

// NonStrict makes missing required constructor dependencies resolve to nil
// instead of failing with *MissingServiceError. ServicesAccessor lookups are
// not affected.
func NonStrict() Option {
	return func(s *InstantiationService) { s.strict = false }
}

// WithLogger sets the logger that traces resolutions. A nil logger discards
// the output.
func WithLogger(l Logger) Option {
	return func(s *InstantiationService) {
		if l == nil {
			l = nullLogger{}
		}
		s.log = l
	}
}

// InstantiationService builds instances from constructors and descriptors,
// injecting the services registered in its ServiceCollection.
//
// Services bound as descriptors are built on first use, promoted to instances
// in the collection of the container that built them and reused afterwards.
// A child container reads through to its parent but never writes into it.
//
// An InstantiationService and all of its children share one resolution state
// and must be used from a single goroutine.
type InstantiationService struct {
	services *ServiceCollection
	strict   bool
	parent   *InstantiationService
	children []*InstantiationService
	log      Logger
	res      *resolution
	store    *DisposableStore
	disposed bool
}

// NewInstantiationService returns a strict container over services. A nil
// collection is replaced by an empty one.
func NewInstantiationService(services *ServiceCollection, opts ...Option) *InstantiationService {
	if services == nil {
		services = NewServiceCollection()
	}
	s := &InstantiationService{
		services: services,
		strict:   true,
		log:      nullLogger{},
		res:      newResolution(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = NewDisposableStore(s.log)
	return s
}

// Services returns the collection the container owns.
func (s *InstantiationService) Services() *ServiceCollection { return s.services }

// Parent returns the container s was created from, or nil.
func (s *InstantiationService) Parent() *InstantiationService { return s.parent }

// Strict reports whether missing required dependencies fail construction.
func (s *InstantiationService) Strict() bool { return s.strict }

// CreateChild returns a container that consults services first and s as the
// fallback. It inherits strictness and the logger, and is disposed with s
// unless it is disposed first, which also detaches it from s.
func (s *InstantiationService) CreateChild(services *ServiceCollection) *InstantiationService {
	if services == nil {
		services = NewServiceCollection()
	}
	child := &InstantiationService{
		services: services,
		strict:   s.strict,
		parent:   s,
		log:      s.log,
		res:      s.res,
		store:    NewDisposableStore(s.log),
		disposed: s.disposed,
	}
	s.children = append(s.children, child)
	return child
}

// CreateInstance builds a T from a *Constructor[T] or a *Descriptor[T].
//
// Declared services are placed at their parameter indices and the fixed
// arguments, the descriptor's followed by args, fill the remaining positions
// in order. The returned value is not stored anywhere.
func CreateInstance[T any](s *InstantiationService, target Target[T], args ...any) (T, error) {
	var zero T
	ctor, err := targetConstructor(target)
	if err != nil {
		return zero, err
	}
	if s.disposed {
		return zero, ErrServiceDisposed
	}

	s.res.begin("createInstance " + ctor.name)
	defer s.res.end()

	v, err := s.construct(ctor, target.staticArguments(), args)
	if err != nil {
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

// MustCreateInstance is CreateInstance that panics on error.
func MustCreateInstance[T any](s *InstantiationService, target Target[T], args ...any) T {
	v, err := CreateInstance(s, target, args...)
	if err != nil {
		panic(err)
	}
	return v
}

func targetConstructor[T any](target Target[T]) (*Constructor[T], error) {
	switch t := target.(type) {
	case nil:
		return nil, ErrNilTarget
	case *Constructor[T]:
		if t == nil {
			return nil, ErrNilTarget
		}
		return t, nil
	case *Descriptor[T]:
		if t == nil {
			return nil, ErrNilTarget
		}
		return t.ctor, nil
	}
	return target.constructor(), nil
}

// InvokeFunction calls fn with an accessor scoped to this call and returns
// what fn returns. The error from fn is returned unchanged and a panic in fn
// propagates. The accessor expires when InvokeFunction returns.
func (s *InstantiationService) InvokeFunction(fn func(accessor ServicesAccessor, args ...any) (any, error), args ...any) (any, error) {
	if fn == nil {
		return nil, ErrNilTarget
	}
	if s.disposed {
		return nil, ErrServiceDisposed
	}

	s.res.begin("invokeFunction")
	a := &accessor{svc: s}
	defer func() {
		a.expired = true
		s.res.end()
	}()

	return fn(a, args...)
}

// Invoke is the typed form of InvokeFunction.
func Invoke[R any](s *InstantiationService, fn func(accessor ServicesAccessor) (R, error)) (R, error) {
	var out R
	_, err := s.InvokeFunction(func(a ServicesAccessor, _ ...any) (any, error) {
		r, err := fn(a)
		out = r
		return nil, err
	})
	return out, err
}

// RegisterDisposable hands d to the container, which disposes it together
// with the services it built. Registering the container itself fails with
// ErrSelfRegistration.
func (s *InstantiationService) RegisterDisposable(d Disposable) error {
	if other, ok := d.(*InstantiationService); ok && other == s {
		return ErrSelfRegistration
	}
	if s.disposed {
		return ErrServiceDisposed
	}
	return s.store.Add(d)
}

// Dispose disposes the children, then every Disposable service this container
// promoted from a descriptor or was handed with RegisterDisposable, newest
// first. Afterwards every operation returns ErrServiceDisposed.
func (s *InstantiationService) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	if s.parent != nil {
		s.parent.detach(s)
	}
	s.log.Debug("di: disposing ", s.store.Len(), " services")
	s.store.Dispose()
}

func (s *InstantiationService) detach(child *InstantiationService) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// IsDisposed reports whether Dispose has been called.
func (s *InstantiationService) IsDisposed() bool { return s.disposed }

func (s *InstantiationService) collection() *ServiceCollection { return s.services }

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// resolution is the in-progress state shared by a container family.
//
// Every node in the graph is either the synthetic root of an active
// CreateInstance or InvokeFunction call, or a service under construction.
// active is the stack of those nodes, innermost last. A nested call links its
// root to the node that was active when it started, so re-entering a service
// from inside its own constructor is reported as a cycle as well.
type resolution struct {
	graph  *graph.Graph[string]
	active []string
	calls  uint64
}

func newResolution() *resolution {
	return &resolution{graph: graph.New(func(key string) string { return key })}
}

func (r *resolution) begin(label string) {
	r.calls++
	root := "<" + label + " #" + strconv.FormatUint(r.calls, 10) + ">"
	if cur, ok := r.current(); ok {
		r.graph.InsertEdge(cur, root)
	} else {
		r.graph.LookupOrInsertNode(root)
	}
	r.active = append(r.active, root)
}

func (r *resolution) end() {
	root := r.active[len(r.active)-1]
	r.active = r.active[:len(r.active)-1]
	r.graph.RemoveNode(root)
}

func (r *resolution) current() (string, bool) {
	if len(r.active) == 0 {
		return "", false
	}
	return r.active[len(r.active)-1], true
}

// lookup walks the container chain for id.
func (s *InstantiationService) lookup(id ServiceIdentifier) (any, bool) {
	if keyOf(id) == InstantiationServiceID.id {
		return s, true
	}
	for c := s; c != nil; c = c.parent {
		if v, ok := c.services.Get(id); ok {
			return v, true
		}
	}
	return nil, false
}

// resolve returns the instance bound to id, building descriptors on the way.
// found is false when nothing in the chain binds id.
func (s *InstantiationService) resolve(id ServiceIdentifier) (v any, found bool, err error) {
	if s.disposed {
		return nil, false, ErrServiceDisposed
	}
	raw, ok := s.lookup(id)
	if !ok {
		return nil, false, nil
	}
	desc, ok := raw.(SyncDescriptor)
	if !ok {
		return raw, true, nil
	}
	v, err = s.createService(id, desc)
	return v, true, err
}

// createService builds desc for id, promotes the result into s's own
// collection and tracks it for disposal.
func (s *InstantiationService) createService(id ServiceIdentifier, desc SyncDescriptor) (any, error) {
	r := s.res
	name := id.String()
	cur, _ := r.current()

	if path := r.graph.FindPath(name, cur); path != nil {
		return nil, &CyclicDependencyError{Path: append(path, name)}
	}
	r.graph.InsertEdge(cur, name)
	r.active = append(r.active, name)
	defer func() {
		r.active = r.active[:len(r.active)-1]
		r.graph.RemoveNode(name)
	}()

	s.log.Debug("di: creating service ", name, " with ", desc.ConstructorName())
	inst, err := s.construct(desc.recipe(), desc.fixed(), nil)
	if err != nil {
		return nil, err
	}

	s.services.Set(id, inst)
	if d, ok := inst.(Disposable); ok {
		if err := s.store.Add(d); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// construct resolves rec's dependencies and calls its build function.
//
// Declared services take their recorded indices; the fixed arguments fill
// the remaining positions in order, so a service may sit before, between or
// after them.
func (s *InstantiationService) construct(rec recipe, fixed, args []any) (any, error) {
	name := rec.recipeName()
	all := make([]any, 0, len(fixed)+len(args))
	all = append(all, fixed...)
	all = append(all, args...)

	arity := rec.recipeArity()
	deps := rec.recipeDeps()
	if arity >= 0 && len(all) > arity-len(deps) {
		return nil, &ArityError{Constructor: name, Arity: arity, Injected: len(deps), Got: len(all)}
	}

	injected := make(map[int]bool, len(deps))
	last := arity - 1
	for _, d := range deps {
		injected[d.Index] = true
		if d.Index > last {
			last = d.Index
		}
	}

	params := make([]any, 0, last+1)
	next := 0
	for i := 0; i <= last || next < len(all); i++ {
		switch {
		case injected[i]:
			params = append(params, nil)
		case next < len(all):
			params = append(params, all[next])
			next++
		default:
			params = append(params, nil)
		}
	}
	for _, d := range deps {
		v, err := s.inject(name, d)
		if err != nil {
			return nil, err
		}
		params[d.Index] = v
	}

	inst, err := rec.buildAny(params)
	if err != nil {
		if _, ok := err.(*ArgumentTypeError); ok {
			return nil, err
		}
		return nil, &ConstructionError{Constructor: name, Err: err}
	}
	return inst, nil
}

// inject produces the value for one declared parameter of requester.
func (s *InstantiationService) inject(requester string, d Dependency) (any, error) {
	if d.Lazy {
		return s.injectLazy(requester, d)
	}
	v, found, err := s.resolve(d.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, s.missing(requester, d)
	}
	return v, nil
}

func (s *InstantiationService) injectLazy(requester string, d Dependency) (any, error) {
	raw, ok := s.lookup(d.ID)
	if !ok {
		return nil, s.missing(requester, d)
	}
	if desc, ok := raw.(SyncDescriptor); ok && desc.SupportsDelayedInstantiation() {
		id := d.ID
		return d.wrap(func() (any, error) { return s.resolveDeferred(id, requester) }), nil
	}
	v, _, err := s.resolve(d.ID)
	if err != nil {
		return nil, err
	}
	return d.wrap(func() (any, error) { return v, nil }), nil
}

// resolveDeferred builds a delayed service when its *Lazy handle is first
// read, possibly long after the consumer was constructed.
func (s *InstantiationService) resolveDeferred(id ServiceIdentifier, requester string) (any, error) {
	if s.disposed {
		return nil, ErrServiceDisposed
	}
	s.res.begin("lazy " + id.String())
	defer s.res.end()

	v, found, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &MissingServiceError{Service: id.String(), Requester: requester}
	}
	return v, nil
}

// missing returns the error for an unbound dependency, or nil when the
// dependency may be left empty.
func (s *InstantiationService) missing(requester string, d Dependency) error {
	if d.Optional {
		return nil
	}
	if !s.strict {
		s.log.Debug("di: ", requester, " is missing service ", d.ID.String(), ", passing nil")
		return nil
	}
	return &MissingServiceError{Service: d.ID.String(), Requester: requester}
}

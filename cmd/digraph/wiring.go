// syncdi/cmd/digraph/wiring.go
package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sghaida/syncdi/di"
)

// Component is what every manifest service builds into: its name, the
// fixed arguments it was given and the services injected into it.
type Component struct {
	Name string
	Args []any
	Deps map[string]*Component
	Lazy map[string]*di.Lazy[*Component]
}

// Resolve forces every lazy dependency of c.
func (c *Component) Resolve() error {
	for _, name := range sortedNames(c.Lazy) {
		if _, err := c.Lazy[name].Value(); err != nil {
			return errors.Wrapf(err, "%s: lazy %s", c.Name, name)
		}
	}
	return nil
}

// wiring is a manifest turned into container bindings.
type wiring struct {
	manifest *Manifest
	ids      map[string]di.ServiceID[*Component]
	targets  map[string]*di.Descriptor[*Component]

	// built lists component names in construction order.
	built []string
}

func newWiring(m *Manifest) (*wiring, error) {
	w := &wiring{
		manifest: m,
		ids:      map[string]di.ServiceID[*Component]{},
		targets:  map[string]*di.Descriptor[*Component]{},
	}

	all := append(append([]ServiceSpec{}, m.Services...), m.Targets...)
	for _, spec := range all {
		if _, err := w.identifier(spec.Name); err != nil {
			return nil, err
		}
		for _, d := range spec.Deps {
			if _, err := w.identifier(d.Service); err != nil {
				return nil, err
			}
		}
	}

	for _, spec := range m.Targets {
		desc, err := w.descriptor(spec)
		if err != nil {
			return nil, err
		}
		w.targets[spec.Name] = desc
	}
	return w, nil
}

// identifier returns the interned identifier for name. A name already taken
// by a different service type in this process is reported instead of
// panicking.
func (w *wiring) identifier(name string) (id di.ServiceID[*Component], err error) {
	if id, ok := w.ids[name]; ok {
		return id, nil
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrapf(e, "service %q", name)
				return
			}
			panic(r)
		}
	}()
	id = di.CreateDecorator[*Component](name)
	w.ids[name] = id
	return id, nil
}

// descriptor builds the constructor for spec: its fixed arguments first,
// then one parameter per dependency.
func (w *wiring) descriptor(spec ServiceSpec) (*di.Descriptor[*Component], error) {
	nArgs := len(spec.Args)
	ctor := di.NewConstructor(spec.Name, nArgs+len(spec.Deps), func(params []any) (*Component, error) {
		c := &Component{
			Name: spec.Name,
			Args: append([]any(nil), params[:nArgs]...),
			Deps: map[string]*Component{},
			Lazy: map[string]*di.Lazy[*Component]{},
		}
		for i, d := range spec.Deps {
			switch v := params[nArgs+i].(type) {
			case *Component:
				c.Deps[d.Service] = v
			case *di.Lazy[*Component]:
				c.Lazy[d.Service] = v
			case nil:
			default:
				return nil, fmt.Errorf("dependency %s has type %T", d.Service, v)
			}
		}
		w.built = append(w.built, spec.Name)
		return c, nil
	})

	for i, d := range spec.Deps {
		id, err := w.identifier(d.Service)
		if err != nil {
			return nil, err
		}
		index := nArgs + i
		switch {
		case d.Lazy && d.Optional:
			di.OptionalLazy(ctor, index, id)
		case d.Lazy:
			di.InjectLazy(ctor, index, id)
		case d.Optional:
			ctor.Optional(index, id)
		default:
			ctor.Inject(index, id)
		}
	}

	// Targets get their args at CreateInstance time.
	var static []any
	if _, isTarget := w.targetSpec(spec.Name); !isTarget {
		static = spec.Args
	}
	return di.NewDescriptor(ctor, static, spec.Delayed), nil
}

func (w *wiring) targetSpec(name string) (ServiceSpec, bool) {
	for _, t := range w.manifest.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return ServiceSpec{}, false
}

// Collection returns a fresh collection binding every manifest service to
// its descriptor.
func (w *wiring) Collection() (*di.ServiceCollection, error) {
	c := di.NewServiceCollection()
	for _, spec := range w.manifest.Services {
		desc, err := w.descriptor(spec)
		if err != nil {
			return nil, err
		}
		c.Set(w.ids[spec.Name], desc)
	}
	return c, nil
}

// Container builds an instantiation service over a fresh collection.
func (w *wiring) Container(opts ...di.Option) (*di.InstantiationService, error) {
	c, err := w.Collection()
	if err != nil {
		return nil, err
	}
	return di.NewInstantiationService(c, opts...), nil
}

// ResolveService resolves the manifest service name through s and forces
// its lazy dependencies.
func (w *wiring) ResolveService(s *di.InstantiationService, name string) (*Component, error) {
	id, ok := w.ids[name]
	if !ok {
		return nil, errors.Errorf("unknown service %q", name)
	}
	c, err := di.Invoke(s, func(a di.ServicesAccessor) (*Component, error) {
		return di.Get(a, id)
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return c, c.Resolve()
}

// BuildTarget constructs the manifest target name through s.
func (w *wiring) BuildTarget(s *di.InstantiationService, name string) (*Component, error) {
	desc, ok := w.targets[name]
	if !ok {
		return nil, errors.Errorf("unknown target %q", name)
	}
	spec, _ := w.targetSpec(name)
	c, err := di.CreateInstance(s, desc, spec.Args...)
	if err != nil {
		return nil, err
	}
	return c, c.Resolve()
}

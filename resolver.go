package lazydi

import (
	"go.uber.org/zap"
)

// ResolverOption is a functional option for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used to report auto-wiring. Events are
// logged at debug level. The default logger discards everything.
func WithResolverLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Resolver adds auto-wiring to a Container. When asked for a name the
// container does not have, and the name is a type in the catalog, the
// resolver registers a factory for it, and for everything it depends on,
// before fetching it from the container.
//
// Interfaces are resolved through links, set up with Link. A Resolver is an
// immutable value: Link returns a new Resolver and leaves the receiver as it
// was. All resolvers derived from one another share the same container.
type Resolver struct {
	container Container
	types     *Types
	links     map[string]string
	log       *zap.Logger
}

var _ Container = (*Resolver)(nil)

// Autowire wraps the container with a resolver that builds types from the
// catalog.
func Autowire(c Container, types *Types, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		container: c,
		types:     types,
		links:     map[string]string{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Link returns a resolver that resolves the interface named abstract by
// building the type named concrete. A later link for the same interface
// replaces an earlier one. If the concrete type does not implement the
// interface, or either name is not in the catalog, Link fails with
// ErrInvalidServiceType.
func (r *Resolver) Link(abstract, concrete string) (*Resolver, error) {
	if err := validateLink(r.types, abstract, concrete); err != nil {
		return nil, err
	}

	links := make(map[string]string, len(r.links)+1)
	for k, v := range r.links {
		links[k] = v
	}
	links[abstract] = concrete

	r.log.Debug("link added", zap.String("abstract", abstract), zap.String("concrete", concrete))

	return &Resolver{
		container: r.container,
		types:     r.types,
		links:     links,
		log:       r.log,
	}, nil
}

// Get returns the service from the container, auto-wiring it first if the
// container does not have it. Nothing is registered unless the whole
// dependency graph of the name can be auto-wired.
func (r *Resolver) Get(name string) (any, error) {
	if !r.container.Has(name) {
		p := newPlan()
		if err := r.resolve(name, p); err != nil {
			return nil, err
		}
		r.install(p)
	}
	return r.container.Get(name)
}

// GetOfType is Get followed by a type check against the resolver's catalog,
// using the rules of Registry.GetOfType.
func (r *Resolver) GetOfType(name, requiredType string) (any, error) {
	value, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := checkType(name, value, requiredType, r.types); err != nil {
		return nil, err
	}
	return value, nil
}

// Has reports whether the container has the name, the name is a concrete
// type in the catalog, or the name is a linked interface. Interfaces without
// a link are not reported.
func (r *Resolver) Has(name string) bool {
	if r.container.Has(name) {
		return true
	}
	if r.types.IsConcrete(name) {
		return true
	}
	_, linked := r.links[name]
	return linked
}

// Set passes the factory to the container.
func (r *Resolver) Set(name string, factory Factory, opts ...SetOption) {
	r.container.Set(name, factory, opts...)
}

// Forget removes the name from the container.
func (r *Resolver) Forget(name string) {
	r.container.Forget(name)
}

// registration is a factory waiting to be installed in the container.
type registration struct {
	name    string
	factory Factory
	opts    []SetOption
}

// plan collects the registrations for one auto-wiring request, dependencies
// before their dependents.
type plan struct {
	visiting      map[string]bool
	planned       map[string]bool
	registrations []registration
}

func newPlan() *plan {
	return &plan{
		visiting: map[string]bool{},
		planned:  map[string]bool{},
	}
}

func (p *plan) add(name string, factory Factory, opts ...SetOption) {
	p.planned[name] = true
	p.registrations = append(p.registrations, registration{name: name, factory: factory, opts: opts})
}

// install registers the planned factories. Names the container gained since
// the plan was made keep their entries.
func (r *Resolver) install(p *plan) {
	for _, reg := range p.registrations {
		if r.container.Has(reg.name) {
			continue
		}
		r.container.Set(reg.name, reg.factory, reg.opts...)
	}
}

// resolve plans factories for the named type and everything it depends on
// that the container does not have yet. Types already being resolved further
// up are skipped; a genuine cycle surfaces when the factories run.
func (r *Resolver) resolve(name string, p *plan) error {
	d, ok := r.types.describe(name)
	if !ok {
		return serviceNotFound(name)
	}

	p.visiting[name] = true
	defer delete(p.visiting, name)

	if d.abstract {
		return r.resolveAbstract(d, p)
	}
	return r.resolveConcrete(d, p)
}

func (r *Resolver) resolveAbstract(d *descriptor, p *plan) error {
	concrete, ok := r.links[d.name]
	if !ok {
		return cannotResolveAbstract(d.name)
	}
	if err := r.resolveDependency(concrete, p); err != nil {
		return err
	}

	container := r.container
	p.add(d.name, func() (any, error) {
		return container.Get(concrete)
	}, WithoutCache())

	r.log.Debug("abstract type linked", zap.String("service", d.name), zap.String("concrete", concrete))
	return nil
}

func (r *Resolver) resolveConcrete(d *descriptor, p *plan) error {
	dependencies := make([]string, len(d.params))
	for i, param := range d.params {
		info := getTypeInfo(param)
		if info.isBuiltin {
			return cannotAutoWireBuiltIn(d.name, param.String())
		}
		dependencies[i] = info.name
		if err := r.resolveDependency(info.name, p); err != nil {
			return err
		}
	}

	p.add(d.name, autowiredFactory(r.container, d, dependencies))

	r.log.Debug("service auto-wired", zap.String("service", d.name), zap.Strings("dependencies", dependencies))
	return nil
}

func (r *Resolver) resolveDependency(name string, p *plan) error {
	if p.visiting[name] || p.planned[name] || r.container.Has(name) {
		return nil
	}
	return r.resolve(name, p)
}

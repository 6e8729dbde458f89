package lazydi

import (
	"context"
	"sort"
	"sync"

	"github.com/gburgyan/go-timing"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Factory produces the value of a service. A factory may call back into the
// registry that owns it to fetch its collaborators. Returning an error, or
// panicking, makes the registry report an ErrInvalidFactory for the service.
type Factory func() (any, error)

// Getter is anything that can look services up by name.
type Getter interface {
	Get(name string) (any, error)
}

// Container is the registry surface shared by Registry and Resolver.
type Container interface {
	Getter

	// GetOfType is Get with a type requirement. See Registry.GetOfType.
	GetOfType(name, requiredType string) (any, error)

	// Has reports whether the name can be fetched without ErrServiceNotFound.
	Has(name string) bool

	// Set registers or replaces the factory for a name.
	Set(name string, factory Factory, opts ...SetOption)

	// Forget removes the name. Forgetting an unknown name does nothing.
	Forget(name string)
}

// entry is a named factory plus its cache state.
type entry struct {
	factory Factory
	value   any
	loaded  bool
	cache   bool
}

// Registry maps service names to lazily evaluated factories. Results are
// remembered per entry unless the entry was set WithoutCache. A factory that,
// directly or through other factories, asks for its own service is rejected
// with ErrDependenciesCannotBeCircular instead of recursing forever.
//
// A Registry may be shared between goroutines. Cached values are read without
// waiting; factory invocations are serialized, and a goroutine whose factory
// asks for another service loads it in turn while other goroutines wait. A
// factory must not block on a goroutine of its own that loads from the same
// registry.
type Registry struct {
	lock sync.Mutex

	id        string
	entries   map[string]*entry
	resolving resolutionMarks
	loads     *loadLock

	types      *Types
	baseLogger *zap.Logger
	log        *zap.Logger
	timingCtx  context.Context
}

var _ Container = (*Registry)(nil)

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:         uuid.NewString(),
		entries:    map[string]*entry{},
		resolving:  resolutionMarks{},
		loads:      newLoadLock(),
		baseLogger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.baseLogger.With(zap.String("registry", r.id))
	return r
}

// ID returns the unique identifier of this registry. It appears in every log
// line the registry writes.
func (r *Registry) ID() string {
	return r.id
}

// Set registers the factory under the name, replacing any earlier factory and
// dropping any remembered value.
func (r *Registry) Set(name string, factory Factory, opts ...SetOption) {
	e := &entry{
		factory: factory,
		cache:   true,
	}
	for _, opt := range opts {
		opt(e)
	}

	r.lock.Lock()
	r.entries[name] = e
	r.lock.Unlock()

	r.log.Debug("service registered", zap.String("service", name), zap.Bool("cache", e.cache))
}

// Has reports whether a factory is registered for the name, whether or not
// it has been invoked yet.
func (r *Registry) Has(name string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	_, ok := r.entries[name]
	return ok
}

// Forget removes the entry, its remembered value and its resolution mark.
func (r *Registry) Forget(name string) {
	r.lock.Lock()
	_, existed := r.entries[name]
	delete(r.entries, name)
	delete(r.resolving, name)
	r.lock.Unlock()

	if existed {
		r.log.Debug("service forgotten", zap.String("service", name))
	}
}

// Get returns the service registered under the name, invoking its factory
// if there is no remembered value or the entry is not cached.
func (r *Registry) Get(name string) (any, error) {
	if value, found, err := r.cached(name); err != nil || found {
		return value, err
	}

	release := r.loads.acquire()
	defer release()

	// Another goroutine may have loaded or replaced the entry while this one
	// was waiting.
	r.lock.Lock()
	e, ok := r.entries[name]
	if !ok {
		r.lock.Unlock()
		return nil, serviceNotFound(name)
	}
	if e.cache && e.loaded {
		value := e.value
		r.lock.Unlock()
		return value, nil
	}
	r.lock.Unlock()

	value, err := r.load(name, e.factory)
	if err != nil {
		return nil, err
	}

	// The factory may have forgotten or replaced its own entry. The value is
	// still returned but only remembered by the entry that produced it.
	r.lock.Lock()
	if e.cache && r.entries[name] == e {
		e.value = value
		e.loaded = true
	}
	r.lock.Unlock()

	return value, nil
}

// cached returns the remembered value of the entry, if there is one.
func (r *Registry) cached(name string) (any, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false, serviceNotFound(name)
	}
	if e.cache && e.loaded {
		return e.value, true, nil
	}
	return nil, false, nil
}

// GetOfType returns the service like Get and then checks it against the
// required type. An empty requiredType accepts anything. Otherwise the value
// matches when:
//
//   - its kind has that name ("string", "int", "float64", "map", ...)
//   - its type has that name, as produced by NameOf or reflect.Type.String
//   - the registry was given a Types catalog that knows the name, and the
//     value is of that type or implements that interface
//
// A nil value only matches "nil".
func (r *Registry) GetOfType(name, requiredType string) (any, error) {
	value, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := checkType(name, value, requiredType, r.types); err != nil {
		return nil, err
	}
	return value, nil
}

// Preload eagerly loads the named services, in order, stopping at the first
// failure. Without names it loads every cached entry in name order.
func (r *Registry) Preload(names ...string) error {
	if len(names) == 0 {
		r.lock.Lock()
		for name, e := range r.entries {
			if e.cache {
				names = append(names, name)
			}
		}
		r.lock.Unlock()
		sort.Strings(names)
	}

	for _, name := range names {
		if _, err := r.Get(name); err != nil {
			r.log.Debug("preload failed", zap.String("service", name), zap.Error(err))
			return err
		}
	}
	return nil
}

// load runs the factory for the name behind the resolution mark. The caller
// must hold the load lock.
func (r *Registry) load(name string, factory Factory) (any, error) {
	release, err := r.enterResolution(name)
	defer release()
	if err != nil {
		r.log.Debug("circular dependency detected", zap.String("service", name))
		return nil, err
	}

	complete := r.startTiming(name)
	defer complete()

	r.log.Debug("invoking factory", zap.String("service", name))
	value, err := invokeFactory(factory)
	if err != nil {
		r.log.Debug("factory failed", zap.String("service", name), zap.Error(err))
		return nil, invalidFactory(name, err, r.Status())
	}
	return value, nil
}

// invokeFactory calls the factory, turning a panic into an error.
func invokeFactory(factory Factory) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			if recErr, ok := rec.(error); ok {
				err = errors.WithMessage(recErr, "factory panicked")
			} else {
				err = errors.Errorf("factory panicked: %v", rec)
			}
		}
	}()
	return factory()
}

// startTiming opens a timing span for the factory when timing is enabled.
// Spans nest the same way factory calls do. The caller must hold the load
// lock, so only one chain of spans is open at a time.
func (r *Registry) startTiming(name string) func() {
	r.lock.Lock()
	parent := r.timingCtx
	r.lock.Unlock()
	if parent == nil {
		return func() {}
	}

	child, complete := timing.Start(parent, name)
	r.lock.Lock()
	r.timingCtx = child
	r.lock.Unlock()

	return func() {
		complete()
		r.lock.Lock()
		r.timingCtx = parent
		r.lock.Unlock()
	}
}

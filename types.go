package lazydi

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// descriptor is what the catalog knows about one type: whether it is
// abstract and, for concrete types, how to build it and from what.
type descriptor struct {
	name     string
	typ      reflect.Type
	abstract bool
	params   []reflect.Type
	build    func(args []reflect.Value) (reflect.Value, error)
}

// Types is the catalog of type metadata that auto-wiring works from. Go can
// inspect function signatures but types carry no constructors, so the
// application declares them: each constructor function registers its return
// type as a concrete type depending on the constructor's parameter types.
//
//	types := lazydi.NewTypes()
//	err := types.Constructor(NewDatabase, NewUserRepo, NewUserService)
//
// Interfaces that appear as constructor parameters are registered as abstract
// types automatically. Others can be declared with Abstract.
//
// A Types value is safe for concurrent use.
type Types struct {
	lock   sync.RWMutex
	byName map[string]*descriptor
}

// NewTypes creates an empty catalog.
func NewTypes() *Types {
	return &Types{byName: map[string]*descriptor{}}
}

// Constructor registers each function as the constructor of its first
// result type. A constructor has the form func(deps...) T or
// func(deps...) (T, error), where T is not an interface. Registering a second
// constructor for the same type replaces the first.
func (t *Types) Constructor(fns ...any) error {
	for _, fn := range fns {
		if err := t.addConstructor(fn); err != nil {
			return errors.Wrapf(err, "registering %T", fn)
		}
	}
	return nil
}

func (t *Types) addConstructor(fn any) error {
	if err := validateConstructor(fn); err != nil {
		return err
	}

	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()
	hasError := fnType.NumOut() == 2

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	d := &descriptor{
		name:   NameOf(fnType.Out(0)),
		typ:    fnType.Out(0),
		params: params,
		build: func(args []reflect.Value) (reflect.Value, error) {
			results := fnValue.Call(args)
			if hasError && !results[1].IsNil() {
				return reflect.Value{}, results[1].Interface().(error)
			}
			return results[0], nil
		},
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.byName[d.name] = d
	for _, p := range params {
		if p.Kind() == reflect.Interface && !getTypeInfo(p).isBuiltin {
			t.addAbstractLocked(p)
		}
	}
	return nil
}

// Abstract declares the interface T so it can be linked and resolved.
func Abstract[T any](t *Types) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Interface {
		return errors.Errorf("%v is not an interface", typ)
	}
	if getTypeInfo(typ).isBuiltin {
		return errors.Errorf("%v is a built-in type", typ)
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.addAbstractLocked(typ)
	return nil
}

// Concrete declares T with a constructor that takes no arguments and returns
// a fresh zero value: new(E) when T is *E, the zero T otherwise.
func Concrete[T any](t *Types) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() == reflect.Interface {
		return errors.Errorf("%v is an interface", typ)
	}
	if getTypeInfo(typ).isBuiltin {
		return errors.Errorf("%v is a built-in type", typ)
	}

	d := &descriptor{
		name: NameOf(typ),
		typ:  typ,
		build: func([]reflect.Value) (reflect.Value, error) {
			if typ.Kind() == reflect.Pointer {
				return reflect.New(typ.Elem()), nil
			}
			return reflect.New(typ).Elem(), nil
		},
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.byName[d.name] = d
	return nil
}

func (t *Types) addAbstractLocked(typ reflect.Type) {
	name := NameOf(typ)
	if _, ok := t.byName[name]; ok {
		return
	}
	t.byName[name] = &descriptor{
		name:     name,
		typ:      typ,
		abstract: true,
	}
}

// Lookup returns the type registered under the name.
func (t *Types) Lookup(name string) (reflect.Type, bool) {
	d, ok := t.describe(name)
	if !ok {
		return nil, false
	}
	return d.typ, true
}

// IsAbstract reports whether the name is a known interface.
func (t *Types) IsAbstract(name string) bool {
	d, ok := t.describe(name)
	return ok && d.abstract
}

// IsConcrete reports whether the name is a known type that can be built.
func (t *Types) IsConcrete(name string) bool {
	d, ok := t.describe(name)
	return ok && !d.abstract
}

// Names returns every type name in the catalog, sorted.
func (t *Types) Names() []string {
	t.lock.RLock()
	defer t.lock.RUnlock()

	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Types) describe(name string) (*descriptor, bool) {
	if t == nil {
		return nil, false
	}
	t.lock.RLock()
	defer t.lock.RUnlock()
	d, ok := t.byName[name]
	return d, ok
}

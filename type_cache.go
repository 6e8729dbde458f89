package lazydi

import (
	"reflect"
	"sync"
)

// typeInfo is what the package needs to know about a reflect.Type.
type typeInfo struct {
	name      string
	isBuiltin bool
}

var (
	typeInfos sync.Map // map[reflect.Type]*typeInfo
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

func getTypeInfo(t reflect.Type) *typeInfo {
	if info, ok := typeInfos.Load(t); ok {
		return info.(*typeInfo)
	}

	info := &typeInfo{
		name:      computeName(t),
		isBuiltin: computeBuiltin(t),
	}

	actual, _ := typeInfos.LoadOrStore(t, info)
	return actual.(*typeInfo)
}

// NameOf returns the service name used for a type: the package path and type
// name for named types, prefixed with "*" for each level of pointer. Unnamed
// types use their Go syntax.
func NameOf(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return getTypeInfo(t).name
}

// TypeName returns the service name of T. See NameOf.
func TypeName[T any]() string {
	return NameOf(reflect.TypeOf((*T)(nil)).Elem())
}

func computeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + computeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// computeBuiltin reports whether a type has no identity of its own: the
// predeclared types, error, and unnamed composites such as slices and maps.
// Pointers are judged by what they point at.
func computeBuiltin(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() == ""
}

type assignment struct {
	from, to reflect.Type
}

// assignable remembers the result of implements for the pairs that Link and
// GetOfType check over and over.
var assignable sync.Map // map[assignment]bool

// implements reports whether a value of type from can stand in for the
// catalog type to: it implements the interface, or it is that type.
func implements(from, to reflect.Type) bool {
	key := assignment{from: from, to: to}
	if ok, found := assignable.Load(key); found {
		return ok.(bool)
	}
	ok := from == to || (to.Kind() == reflect.Interface && from.Implements(to))
	assignable.Store(key, ok)
	return ok
}

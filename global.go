package lazydi

import (
	"reflect"
)

// GetAs returns the service registered under the name as a T. If the service
// is not a T the error is an ErrInvalidServiceType.
func GetAs[T any](c Getter, name string) (T, error) {
	var zero T
	value, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	if value == nil {
		// A nil service is a valid T only when T can hold nil.
		switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, nil
		}
		return zero, invalidServiceType(name, "nil", TypeName[T]())
	}
	result, ok := value.(T)
	if !ok {
		return zero, invalidServiceType(name, NameOf(reflect.TypeOf(value)), TypeName[T]())
	}
	return result, nil
}

// MustGet behaves like GetAs except it panics if the service can't be
// returned. This is intended for composition roots where a missing service is
// a programming error.
func MustGet[T any](c Getter, name string) T {
	result, err := GetAs[T](c, name)
	if err != nil {
		panic(err)
	}
	return result
}

// Resolve auto-wires T, using its type name as the service name.
//
//	svc, err := lazydi.Resolve[*UserService](resolver)
func Resolve[T any](r *Resolver) (T, error) {
	return GetAs[T](r, TypeName[T]())
}

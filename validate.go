package lazydi

import (
	"reflect"

	"github.com/pkg/errors"
)

// validateConstructor checks that fn can be used as a constructor: a
// non-variadic function returning (T) or (T, error) where T is a named,
// non-interface type.
func validateConstructor(fn any) error {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return errors.Errorf("constructor must be a function, got %v", fnType)
	}
	if fnType.IsVariadic() {
		return errors.New("constructor cannot be variadic")
	}

	if fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return errors.New("constructor must return (T) or (T, error)")
	}
	if fnType.NumOut() == 2 && fnType.Out(1) != errorType {
		return errors.New("second return value must be error")
	}

	out := fnType.Out(0)
	if out.Kind() == reflect.Interface {
		return errors.Errorf("constructor must return a concrete type, got interface %v", out)
	}
	if getTypeInfo(out).isBuiltin {
		return errors.Errorf("constructor must return a named type, got %v", out)
	}
	return nil
}

// validateLink checks that concrete is a buildable type that implements the
// interface named by abstract.
func validateLink(types *Types, abstract, concrete string) error {
	abstractType, ok := types.Lookup(abstract)
	if !ok || !types.IsAbstract(abstract) {
		return invalidServiceType(concrete, concrete, abstract)
	}
	concreteType, ok := types.Lookup(concrete)
	if !ok || !types.IsConcrete(concrete) {
		return invalidServiceType(concrete, concrete, abstract)
	}
	if !implements(concreteType, abstractType) {
		return invalidServiceType(concrete, concrete, abstract)
	}
	return nil
}

// checkType returns an ErrInvalidServiceType error when the value does not
// match the required type. See Registry.GetOfType for the matching rules.
func checkType(name string, value any, requiredType string, types *Types) error {
	if requiredType == "" || matchesType(value, requiredType, types) {
		return nil
	}
	return invalidServiceType(name, NameOf(reflect.TypeOf(value)), requiredType)
}

func matchesType(value any, requiredType string, types *Types) bool {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		return requiredType == "nil"
	}
	if valueType.Kind().String() == requiredType ||
		valueType.String() == requiredType ||
		NameOf(valueType) == requiredType {
		return true
	}
	required, ok := types.Lookup(requiredType)
	return ok && implements(valueType, required)
}

package lazydi

import (
	"reflect"
)

// autowiredFactory returns the factory the resolver registers for a concrete
// type. Each call fetches the dependencies from the container by name, in
// parameter order, and passes them to the type's constructor.
func autowiredFactory(c Getter, d *descriptor, dependencies []string) Factory {
	return func() (any, error) {
		args := make([]reflect.Value, len(dependencies))
		for i, dependency := range dependencies {
			value, err := c.Get(dependency)
			if err != nil {
				return nil, err
			}
			arg, err := argumentValue(dependency, value, d.params[i])
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}

		result, err := d.build(args)
		if err != nil {
			return nil, err
		}
		return result.Interface(), nil
	}
}

// argumentValue converts a service into a value that can be passed as a
// parameter of the given type.
func argumentValue(name string, value any, paramType reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch paramType.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(paramType), nil
		}
		return reflect.Value{}, invalidServiceType(name, "nil", NameOf(paramType))
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(paramType) {
		return reflect.Value{}, invalidServiceType(name, NameOf(v.Type()), NameOf(paramType))
	}
	return v, nil
}

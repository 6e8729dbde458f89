package lazydi

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrServiceNotFound is the kind of error returned when a name has no
	// registered entry and, for a Resolver, no resolvable type.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidServiceDefinition is the parent kind of every error caused by
	// a badly configured service: failing factories, cycles, type
	// mismatches and types that cannot be auto-wired.
	ErrInvalidServiceDefinition = errors.New("invalid service definition")

	// ErrInvalidFactory is the kind of error returned when a factory fails.
	// The failure is available through errors.Unwrap.
	ErrInvalidFactory = errors.New("invalid factory")

	// ErrDependenciesCannotBeCircular is returned when a factory re-enters the
	// resolution of its own service. It is also an ErrInvalidFactory.
	ErrDependenciesCannotBeCircular = errors.New("dependencies cannot be circular")

	// ErrInvalidServiceType is returned when a value does not satisfy the
	// requested type, or a link's concrete type does not implement its
	// abstract type.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrCannotResolveAbstractType is returned when auto-wiring reaches an
	// interface that has no link.
	ErrCannotResolveAbstractType = errors.New("cannot resolve abstract type")

	// ErrCannotAutoWireBuiltInTypes is returned when auto-wiring reaches a
	// constructor parameter of a built-in type.
	ErrCannotAutoWireBuiltInTypes = errors.New("cannot auto-wire built-in types")
)

// kindParents maps each error kind to the broader kind it belongs to.
var kindParents = map[error]error{
	ErrDependenciesCannotBeCircular: ErrInvalidFactory,
	ErrInvalidFactory:               ErrInvalidServiceDefinition,
	ErrInvalidServiceType:           ErrInvalidServiceDefinition,
	ErrCannotResolveAbstractType:    ErrInvalidServiceDefinition,
	ErrCannotAutoWireBuiltInTypes:   ErrInvalidServiceDefinition,
}

// DependencyError is the error returned for every registry and resolver
// failure. Kind is one of the Err sentinels; errors.Is matches it and the
// kinds it belongs to. Status is a snapshot of Registry.Status taken when a
// factory failed.
type DependencyError struct {
	Kind        error
	Service     string
	Message     string
	Status      string
	SourceError error
}

// Error describes the failure, including the cause if there is one.
func (e *DependencyError) Error() string {
	if e.SourceError == nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Service)
	} else {
		return fmt.Sprintf("%s: %s (%v)", e.Message, e.Service, e.Unwrap().Error())
	}
}

// Unwrap returns the error that caused a factory to fail.
func (e *DependencyError) Unwrap() error {
	return e.SourceError
}

// Is reports whether the error is of the target kind, or of a kind that
// belongs to it.
func (e *DependencyError) Is(target error) bool {
	for kind := e.Kind; kind != nil; kind = kindParents[kind] {
		if kind == target {
			return true
		}
	}
	return false
}

func serviceNotFound(name string) error {
	return &DependencyError{
		Kind:    ErrServiceNotFound,
		Service: name,
		Message: "no service registered",
	}
}

func invalidFactory(name string, cause error, status string) error {
	return &DependencyError{
		Kind:        ErrInvalidFactory,
		Service:     name,
		Message:     "service was configured incorrectly and could not be created",
		Status:      status,
		SourceError: cause,
	}
}

func circularDependency(name string, status string) error {
	return &DependencyError{
		Kind:    ErrDependenciesCannotBeCircular,
		Service: name,
		Message: "circular dependency loop detected in factory",
		Status:  status,
	}
}

func invalidServiceType(name string, actual string, expected string) error {
	return &DependencyError{
		Kind:    ErrInvalidServiceType,
		Service: name,
		Message: fmt.Sprintf("service of type %s is not of type %s", actual, expected),
	}
}

func cannotResolveAbstract(name string) error {
	return &DependencyError{
		Kind:    ErrCannotResolveAbstractType,
		Service: name,
		Message: "no link defined for abstract type",
	}
}

func cannotAutoWireBuiltIn(name string, param string) error {
	return &DependencyError{
		Kind:    ErrCannotAutoWireBuiltInTypes,
		Service: name,
		Message: fmt.Sprintf("cannot auto-wire built-in parameter type %s", param),
	}
}

package lazydi

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDependencyError_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		is      []error
		isNot   []error
		message string
	}{
		{
			name:    "service not found",
			err:     serviceNotFound("foo"),
			is:      []error{ErrServiceNotFound},
			isNot:   []error{ErrInvalidServiceDefinition, ErrInvalidFactory},
			message: "no service registered: foo",
		},
		{
			name:    "invalid factory",
			err:     invalidFactory("foo", errBroken, ""),
			is:      []error{ErrInvalidFactory, ErrInvalidServiceDefinition, errBroken},
			isNot:   []error{ErrDependenciesCannotBeCircular, ErrServiceNotFound},
			message: "service was configured incorrectly and could not be created: foo (broken on purpose)",
		},
		{
			name:    "circular",
			err:     circularDependency("foo", ""),
			is:      []error{ErrDependenciesCannotBeCircular, ErrInvalidFactory, ErrInvalidServiceDefinition},
			isNot:   []error{ErrInvalidServiceType},
			message: "circular dependency loop detected in factory: foo",
		},
		{
			name:    "invalid service type",
			err:     invalidServiceType("foo", "*Bar", "*Foo"),
			is:      []error{ErrInvalidServiceType, ErrInvalidServiceDefinition},
			isNot:   []error{ErrInvalidFactory},
			message: "service of type *Bar is not of type *Foo: foo",
		},
		{
			name:    "abstract",
			err:     cannotResolveAbstract("FooInterface"),
			is:      []error{ErrCannotResolveAbstractType, ErrInvalidServiceDefinition},
			isNot:   []error{ErrInvalidFactory, ErrServiceNotFound},
			message: "no link defined for abstract type: FooInterface",
		},
		{
			name:    "built-in",
			err:     cannotAutoWireBuiltIn("*Qux", "string"),
			is:      []error{ErrCannotAutoWireBuiltInTypes, ErrInvalidServiceDefinition},
			isNot:   []error{ErrCannotResolveAbstractType, ErrInvalidFactory},
			message: "cannot auto-wire built-in parameter type string: *Qux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, kind := range tt.is {
				assert.ErrorIs(t, tt.err, kind)
			}
			for _, kind := range tt.isNot {
				assert.NotErrorIs(t, tt.err, kind)
			}
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestDependencyError_WrappedByCallers(t *testing.T) {
	err := fmt.Errorf("starting app: %w", serviceNotFound("db"))
	assert.ErrorIs(t, err, ErrServiceNotFound)

	wrapped := errors.Wrap(invalidFactory("db", errBroken, ""), "starting app")
	assert.ErrorIs(t, wrapped, ErrInvalidFactory)
	assert.ErrorIs(t, wrapped, errBroken)

	var depErr *DependencyError
	assert.True(t, errors.As(wrapped, &depErr))
	assert.Equal(t, "db", depErr.Service)
}

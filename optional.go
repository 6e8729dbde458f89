package lazydi

import (
	"github.com/pkg/errors"
)

// GetOptional returns the service registered under the name as a T, along with
// a boolean indicating whether the service exists. A missing service is not an
// error; every other failure is returned as is.
//
// This is the way to express an optional collaborator:
//
//	cache, found, err := lazydi.GetOptional[Cache](registry, "cache")
//	if err != nil {
//	    return nil, err
//	}
//	if !found {
//	    cache = noopCache{}
//	}
func GetOptional[T any](c Getter, name string) (T, bool, error) {
	result, err := GetAs[T](c, name)
	// Only the outermost error counts: a factory failing because one of its
	// own dependencies is missing is not an absent service.
	var depErr *DependencyError
	if errors.As(err, &depErr) && depErr.Kind == ErrServiceNotFound {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		return result, false, err
	}
	return result, true, nil
}

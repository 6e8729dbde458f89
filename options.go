package lazydi

import (
	"context"

	"go.uber.org/zap"
)

// Option is a functional option for configuring a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report registry activity. Events are
// logged at debug level. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.baseLogger = logger
		}
	}
}

// WithTypes gives the registry a type catalog so GetOfType can check values
// against interfaces and named types known to the catalog.
func WithTypes(types *Types) Option {
	return func(r *Registry) {
		r.types = types
	}
}

// WithTiming enables timing of factory invocations. The context should carry
// a timing root created with timing.Root; each factory call becomes a child of
// the factory call that triggered it.
func WithTiming(ctx context.Context) Option {
	return func(r *Registry) {
		r.timingCtx = ctx
	}
}

// SetOption configures a single registry entry.
type SetOption func(*entry)

// WithoutCache makes the registry invoke the factory on every Get instead of
// remembering the first result.
func WithoutCache() SetOption {
	return func(e *entry) {
		e.cache = false
	}
}

// WithCache sets whether the entry's result is remembered. Entries are cached
// by default.
func WithCache(cache bool) SetOption {
	return func(e *entry) {
		e.cache = cache
	}
}

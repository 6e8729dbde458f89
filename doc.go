// Package lazydi provides a registry of lazily evaluated services and an
// auto-wiring layer on top of it.
//
// A Registry maps names to factories. A factory runs the first time its
// service is asked for and the result is remembered, unless the service was
// registered WithoutCache. Factories can use the registry to fetch their own
// collaborators; a factory that ends up asking for itself is reported with
// ErrDependenciesCannotBeCircular instead of recursing forever.
//
//	registry := lazydi.New()
//	registry.Set("config", func() (any, error) { return loadConfig() })
//	registry.Set("db", func() (any, error) {
//	    cfg, err := lazydi.GetAs[*Config](registry, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return openDB(cfg.DSN)
//	})
//
// A Resolver wraps a registry and builds services it does not have from a
// Types catalog of constructors, registering each type's dependencies before
// the type itself. Interfaces are resolved through links.
//
//	types := lazydi.NewTypes()
//	_ = types.Constructor(NewSQLStore, NewUserService)
//	resolver, _ := lazydi.Autowire(registry, types).
//	    Link(lazydi.TypeName[Store](), lazydi.TypeName[*SQLStore]())
//	svc, err := lazydi.Resolve[*UserService](resolver)
//
// The error kinds are exported as sentinels to be used with errors.Is.
package lazydi

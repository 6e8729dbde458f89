package lazydi

import (
	"fmt"
	"sort"
	"strings"
)

// Status is a diagnostic tool that returns a string describing the state of the registry.
// The result is one line per registered service, sorted by name, saying whether a value
// has been remembered for it and whether it is cached at all. Services whose factories are
// running at the time of the call are marked as resolving.
func (r *Registry) Status() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.status()
}

// status builds the Status string. The caller must hold the lock.
func (r *Registry) status() string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	result := strings.Builder{}
	for _, name := range names {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		e := r.entries[name]
		var line string
		switch {
		case !e.cache:
			line = fmt.Sprintf("%s - uncached", name)
		case e.loaded:
			line = fmt.Sprintf("%s - cached value: %T", name, e.value)
		default:
			line = fmt.Sprintf("%s - uninitialized", name)
		}
		if r.resolving[name] {
			line += " - resolving"
		}
		result.WriteString(line)
	}

	return result.String()
}

// Names returns the names of all registered services, sorted.
func (r *Registry) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package lazydi

import (
	"sync"

	"github.com/petermattis/goid"
)

type unlocker func()

// resolutionMarks tracks the services whose factories are currently running.
// It is guarded by the owning Registry's lock and only changed by the
// goroutine holding the load lock.
type resolutionMarks map[string]bool

// loadLock serializes factory invocations across goroutines. The goroutine
// holding it may take it again, so a factory can load its own collaborators
// while the rest wait their turn.
type loadLock struct {
	mu    sync.Mutex
	freed *sync.Cond
	owner int64
	depth int
}

func newLoadLock() *loadLock {
	l := &loadLock{}
	l.freed = sync.NewCond(&l.mu)
	return l
}

func (l *loadLock) acquire() unlocker {
	id := goid.Get()

	l.mu.Lock()
	for l.depth > 0 && l.owner != id {
		l.freed.Wait()
	}
	l.owner = id
	l.depth++
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		l.depth--
		if l.depth == 0 {
			l.owner = 0
			l.freed.Broadcast()
		}
		l.mu.Unlock()
	}
}

// enterResolution marks the service as resolving. If it is already marked the
// factory has re-entered its own resolution and a circular dependency error is
// returned. The caller must hold the load lock. The returned unlocker must
// always be called.
func (r *Registry) enterResolution(name string) (unlocker, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.resolving[name] {
		return func() {}, circularDependency(name, r.status())
	}
	r.resolving[name] = true

	return func() {
		r.lock.Lock()
		delete(r.resolving, name)
		r.lock.Unlock()
	}, nil
}

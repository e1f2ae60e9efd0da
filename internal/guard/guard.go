// Package guard tracks which sweets currently have a mutation in flight.
package guard

import "sync"

// Guard is a per-id in-flight set. There is no global lock: different ids never block
// each other. The zero value is not usable; call New.
type Guard struct {
	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func New() *Guard {
	return &Guard{inFlight: make(map[int64]struct{})}
}

// Begin marks id as in flight. It returns false when a mutation for id is already running,
// in which case the caller must drop the request.
func (g *Guard) Begin(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[id]; busy {
		return false
	}
	g.inFlight[id] = struct{}{}
	return true
}

// End clears the in-flight flag for id. Calling it for an idle id is a no-op.
func (g *Guard) End(id int64) {
	g.mu.Lock()
	delete(g.inFlight, id)
	g.mu.Unlock()
}

// InFlight reports whether a mutation for id is running.
func (g *Guard) InFlight(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, busy := g.inFlight[id]
	return busy
}

// Do runs fn while holding the flag for id and releases it on every exit path.
// ok is false when id was already in flight and fn was not called.
func (g *Guard) Do(id int64, fn func() error) (ok bool, err error) {
	if !g.Begin(id) {
		return false, nil
	}
	defer g.End(id)
	return true, fn()
}

// Package generation tags concurrent runs per key so that only the most
// recently started run may publish its result.
//
// A Guard lives in one process. Runs in other processes (the ingest job and
// the API server) are not ordered against each other.
package generation

import (
	"errors"
	"sync"
)

// ErrSuperseded is returned by Publish when a newer run started for the key.
var ErrSuperseded = errors.New("superseded by a newer run")

// Guard hands out monotonically increasing generation numbers per key.
// The zero value is ready to use.
type Guard struct {
	mu      sync.Mutex
	latest  map[string]uint64
	publish map[string]*sync.Mutex
}

// Next starts a new run for key and returns its generation.
func (g *Guard) Next(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest == nil {
		g.latest = make(map[string]uint64)
	}
	g.latest[key]++
	return g.latest[key]
}

// IsLatest reports whether gen is still the newest run for key.
func (g *Guard) IsLatest(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[key] == gen
}

// Publish runs fn if gen is the newest run for key. Publishes of one key are
// serialized, so a newer run's writes never interleave with an older run's and
// always land after them. It returns ErrSuperseded without calling fn when a
// newer run has started.
func (g *Guard) Publish(key string, gen uint64, fn func() error) error {
	lock := g.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if !g.IsLatest(key, gen) {
		return ErrSuperseded
	}
	return fn()
}

func (g *Guard) keyLock(key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.publish == nil {
		g.publish = make(map[string]*sync.Mutex)
	}
	l, ok := g.publish[key]
	if !ok {
		l = &sync.Mutex{}
		g.publish[key] = l
	}
	return l
}

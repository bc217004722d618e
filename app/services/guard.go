package services

import (
	"fmt"
	"sync"
	"time"
)

// KeyStore records idempotency keys. TrySet returns true the first time a key
// is seen. The check-then-set is atomic within one process; across processes
// a race only causes redundant work because the guarded routines are
// idempotent.
type KeyStore interface {
	TrySet(key string) bool
}

// MemoryKeyStore is the in-process KeyStore. Entries are pruned after two
// days so the map does not grow for the life of the process.
type MemoryKeyStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string]time.Time)}
}

func (s *MemoryKeyStore) TrySet(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return false
	}

	cutoff := time.Now().Add(-48 * time.Hour)
	for k, at := range s.keys {
		if at.Before(cutoff) {
			delete(s.keys, k)
		}
	}

	s.keys[key] = time.Now()
	return true
}

// HourlyGuard gates a task to at most one run per clock hour. The clock and
// store are injectable so tests can simulate hour boundaries.
type HourlyGuard struct {
	Clock func() time.Time
	Store KeyStore
}

func NewHourlyGuard() *HourlyGuard {
	return &HourlyGuard{Clock: time.Now, Store: NewMemoryKeyStore()}
}

func (g *HourlyGuard) now() time.Time {
	if g.Clock != nil {
		return g.Clock()
	}
	return time.Now()
}

// ShouldRun claims the current hour's slot for the task. The key format is
// <task>_<YYYY-MM-DD-HH>; a new hour yields a new key and a fresh claim.
func (g *HourlyGuard) ShouldRun(task string) bool {
	key := fmt.Sprintf("%s_%s", task, g.now().Format("2006-01-02-15"))
	return g.Store.TrySet(key)
}

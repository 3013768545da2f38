package orchestrator

import "sync"

// keyedLocks serializes turns per conversation ID. Two concurrent turns for
// the same ID would otherwise both read the same prior state and the second
// write would silently discard the first turn's additions. Different IDs
// never share a lock.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*keyedLock)}
}

// lock acquires the lock for the key and returns its unlock function.
// Entries are reference counted so the map does not grow with every
// conversation ever seen.
func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

package livestock

import "sync"

// keyedLocks hands out one mutex per animal id. Entries are never evicted;
// the herd is small and lock structs are cheap.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// acquire locks the mutex for the given id and returns its unlock func.
func (k *keyedLocks) acquire(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

package spinlock

import (
	"sync/atomic"
)

// Mutex is a spin-based exclusive lock.
//
// It busy-waits instead of parking the goroutine, which makes it suitable
// for very short critical sections (a few memory accesses) under low to
// moderate contention. For long critical sections or heavy contention,
// sync.Mutex is the better choice.
//
// Properties:
//   - Busy-wait (Spinning) with adaptive backoff, no OS-level blocking.
//   - Tracks the owning goroutine, enabling the misuse checks in Unlock.
//   - The zero value is an unlocked Mutex.
//
// Size: 16 bytes.
type Mutex struct {
	_      noCopy
	locked atomic.Bool
	owner  atomic.Int64
}

// Lock acquires the lock. It spins until the lock is available.
func (m *Mutex) Lock() {
	var spins int
	for m.locked.Swap(true) {
		delay(&spins)
	}
	m.owner.Store(gid())
}

// TryLock makes a single attempt to acquire the lock and reports whether
// it succeeded. It never blocks.
func (m *Mutex) TryLock() bool {
	if !m.locked.Load() && !m.locked.Swap(true) {
		m.owner.Store(gid())
		return true
	}
	return false
}

// Unlock releases the lock.
//
// Unless checks are compiled out, it panics when the calling goroutine does
// not hold the lock.
func (m *Mutex) Unlock() {
	if checksEnabled && m.owner.Load() != gid() {
		panic("spinlock: Unlock of Mutex not held by caller")
	}
	m.owner.Store(0)
	m.locked.Store(false)
}

// Locked reports whether the lock is currently held.
// The result is a racy snapshot for diagnostics only.
func (m *Mutex) Locked() bool {
	return m.locked.Load()
}

// Owner returns the id of the goroutine holding the lock, or 0 if the lock
// is not held. Diagnostics only.
func (m *Mutex) Owner() int64 {
	return m.owner.Load()
}

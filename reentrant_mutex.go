package spinlock

import (
	"sync/atomic"
)

// ReentrantMutex is a spin-based exclusive lock that its owner may acquire
// again without deadlocking itself. Each Lock or successful TryLock must be
// balanced by exactly one Unlock; the lock is released when the hold depth
// returns to zero.
//
// Properties:
//   - Same-owner reacquisition is a plain counter increment, no spinning.
//   - Busy-wait (Spinning) with adaptive backoff for the first acquisition.
//   - The zero value is an unlocked ReentrantMutex.
//
// Size: 24 bytes.
type ReentrantMutex struct {
	_      noCopy
	locked atomic.Bool
	owner  atomic.Int64
	depth  atomic.Int32
}

// Lock acquires the lock. If the calling goroutine already holds it, the
// hold depth is incremented and Lock returns immediately; otherwise it
// spins until the lock is available.
func (m *ReentrantMutex) Lock() {
	id := gid()
	if m.owner.Load() == id {
		m.depth.Add(1)
		return
	}
	var spins int
	for m.locked.Swap(true) {
		delay(&spins)
	}
	if checksEnabled && (m.depth.Load() != 0 || m.owner.Load() != 0) {
		panic("spinlock: ReentrantMutex state corrupted")
	}
	m.owner.Store(id)
	m.depth.Store(1)
}

// TryLock makes a single attempt to acquire the lock and reports whether
// it succeeded. Reacquisition by the current owner always succeeds.
func (m *ReentrantMutex) TryLock() bool {
	id := gid()
	if m.owner.Load() == id {
		m.depth.Add(1)
		return true
	}
	if !m.locked.Load() && !m.locked.Swap(true) {
		if checksEnabled && m.depth.Load() != 0 {
			panic("spinlock: ReentrantMutex state corrupted")
		}
		m.owner.Store(id)
		m.depth.Store(1)
		return true
	}
	return false
}

// Unlock decrements the hold depth and releases the lock when the depth
// reaches zero.
//
// Unless checks are compiled out, it panics when the calling goroutine does
// not hold the lock.
func (m *ReentrantMutex) Unlock() {
	if checksEnabled && m.owner.Load() != gid() {
		panic("spinlock: Unlock of ReentrantMutex not held by caller")
	}
	if m.depth.Add(-1) == 0 {
		m.owner.Store(0)
		m.locked.Store(false)
	}
}

// Locked reports whether the lock is currently held.
// The result is a racy snapshot for diagnostics only.
func (m *ReentrantMutex) Locked() bool {
	return m.locked.Load()
}

// Owner returns the id of the goroutine holding the lock, or 0 if the lock
// is not held. Diagnostics only.
func (m *ReentrantMutex) Owner() int64 {
	return m.owner.Load()
}

// ReentrantCount returns the current hold depth, 0 when the lock is not
// held. Diagnostics only.
func (m *ReentrantMutex) ReentrantCount() int32 {
	return m.depth.Load()
}

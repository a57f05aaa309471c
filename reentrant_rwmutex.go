package spinlock

import (
	"sync/atomic"
)

// ReentrantRWMutex is a spin-based reader-writer lock whose write side is
// reentrant: the goroutine holding the write lock may acquire it again, and
// the lock is released when the hold depth returns to zero.
//
// The read side is identical to [RWMutex] and is NOT reentrancy-counted:
// readers are anonymous, so a repeated RLock by the same goroutine is simply
// another independent read acquisition and needs its own RUnlock. A reader
// that takes the write lock, or a writer that takes a read lock, deadlocks
// itself just like with [RWMutex].
//
// Properties:
//   - Same-owner write reacquisition is a plain counter increment.
//   - Writer drain and reader backoff behave exactly as in [RWMutex].
//   - The zero value is an unlocked ReentrantRWMutex.
//
// Size: 24 bytes.
type ReentrantRWMutex struct {
	_       noCopy
	readers atomic.Int32
	writing atomic.Bool
	owner   atomic.Int64
	depth   atomic.Int32
}

// Lock acquires the write lock. If the calling goroutine already holds it,
// the hold depth is incremented and Lock returns immediately; otherwise it
// spins until the writer slot is won and all active readers have drained.
func (rw *ReentrantRWMutex) Lock() {
	id := gid()
	if rw.owner.Load() == id {
		if checksEnabled && rw.depth.Load() <= 0 {
			panic("spinlock: ReentrantRWMutex state corrupted")
		}
		rw.depth.Add(1)
		return
	}
	var spins int
	for rw.writing.Swap(true) {
		delay(&spins)
	}
	for rw.readers.Load() > 0 {
		delay(&spins)
	}
	if checksEnabled && rw.depth.Load() != 0 {
		panic("spinlock: ReentrantRWMutex state corrupted")
	}
	rw.owner.Store(id)
	rw.depth.Store(1)
}

// TryLock makes a single attempt to acquire the write lock and reports
// whether it succeeded. Reacquisition by the current owner always succeeds;
// otherwise active readers observed after winning the writer slot cause a
// rollback and failure rather than a drain wait.
func (rw *ReentrantRWMutex) TryLock() bool {
	id := gid()
	if rw.owner.Load() == id {
		if checksEnabled && rw.depth.Load() <= 0 {
			panic("spinlock: ReentrantRWMutex state corrupted")
		}
		rw.depth.Add(1)
		return true
	}
	if rw.readers.Load() == 0 && !rw.writing.Swap(true) {
		if rw.readers.Load() > 0 {
			rw.writing.Store(false)
			return false
		}
		if checksEnabled && rw.depth.Load() != 0 {
			panic("spinlock: ReentrantRWMutex state corrupted")
		}
		rw.owner.Store(id)
		rw.depth.Store(1)
		return true
	}
	return false
}

// Unlock decrements the hold depth and releases the write lock when the
// depth reaches zero.
//
// Unless checks are compiled out, it panics when the calling goroutine does
// not hold the write lock.
func (rw *ReentrantRWMutex) Unlock() {
	if checksEnabled && rw.owner.Load() != gid() {
		panic("spinlock: Unlock of ReentrantRWMutex not held by caller")
	}
	if rw.depth.Add(-1) == 0 {
		rw.owner.Store(0)
		rw.writing.Store(false)
	}
}

// RLock acquires a read lock. It registers the reader first and checks for
// a writer after, backing off and retrying while one is present.
func (rw *ReentrantRWMutex) RLock() {
	var spins int
	for {
		rw.readers.Add(1)
		if !rw.writing.Load() {
			return
		}
		rw.readers.Add(-1)
		delay(&spins)
	}
}

// TryRLock makes a single attempt to acquire a read lock and reports
// whether it succeeded.
func (rw *ReentrantRWMutex) TryRLock() bool {
	if !rw.writing.Load() {
		rw.readers.Add(1)
		if rw.writing.Load() {
			rw.readers.Add(-1)
			return false
		}
		return true
	}
	return false
}

// RUnlock releases a read lock. Each RUnlock must pair with a prior
// successful RLock or TryRLock.
func (rw *ReentrantRWMutex) RUnlock() {
	rw.readers.Add(-1)
}

// Locked reports whether any reader or writer currently holds the lock.
// The result is a racy snapshot for diagnostics only.
func (rw *ReentrantRWMutex) Locked() bool {
	return rw.writing.Load() || rw.readers.Load() > 0
}

// WriteLocked reports whether a writer currently holds the lock.
// Diagnostics only.
func (rw *ReentrantRWMutex) WriteLocked() bool {
	return rw.writing.Load()
}

// ReaderCount returns the number of active read holders. Diagnostics only.
func (rw *ReentrantRWMutex) ReaderCount() int32 {
	return rw.readers.Load()
}

// Owner returns the id of the goroutine holding the write lock, or 0 if no
// writer is present. Diagnostics only.
func (rw *ReentrantRWMutex) Owner() int64 {
	return rw.owner.Load()
}

// ReentrantCount returns the current write hold depth, 0 when no writer is
// present. Diagnostics only.
func (rw *ReentrantRWMutex) ReentrantCount() int32 {
	return rw.depth.Load()
}

package spinlock

import (
	"sync/atomic"
)

// RWMutex is a spin-based reader-writer lock: any number of concurrent
// readers, or exactly one writer.
//
// A writer first wins the writer slot, which stops new readers, then waits
// for the active readers to drain. Readers register optimistically and back
// off when they observe a writer, so the drain loop terminates as long as
// the existing readers release.
//
// Properties:
//   - Busy-wait (Spinning) with adaptive backoff, no OS-level blocking.
//   - Writer progress is favored during the drain phase, but there is no
//     fairness queue: under sustained reader churn a writer can in theory
//     wait indefinitely.
//   - The zero value is an unlocked RWMutex.
//
// Size: 16 bytes.
type RWMutex struct {
	_       noCopy
	readers atomic.Int32
	writing atomic.Bool
	owner   atomic.Int64
}

// Lock acquires the write lock. It spins until the writer slot is won and
// all active readers have drained.
func (rw *RWMutex) Lock() {
	var spins int
	for rw.writing.Swap(true) {
		delay(&spins)
	}
	for rw.readers.Load() > 0 {
		delay(&spins)
	}
	rw.owner.Store(gid())
}

// TryLock makes a single attempt to acquire the write lock and reports
// whether it succeeded. If it wins the writer slot but then observes active
// readers, it rolls back and fails rather than wait for the drain.
func (rw *RWMutex) TryLock() bool {
	if rw.readers.Load() == 0 && !rw.writing.Swap(true) {
		if rw.readers.Load() > 0 {
			rw.writing.Store(false)
			return false
		}
		rw.owner.Store(gid())
		return true
	}
	return false
}

// Unlock releases the write lock.
//
// Unless checks are compiled out, it panics when the calling goroutine does
// not hold the write lock.
func (rw *RWMutex) Unlock() {
	if checksEnabled && rw.owner.Load() != gid() {
		panic("spinlock: Unlock of RWMutex not held by caller")
	}
	rw.owner.Store(0)
	rw.writing.Store(false)
}

// RLock acquires a read lock. It registers the reader first and checks for
// a writer after, backing off and retrying while one is present.
func (rw *RWMutex) RLock() {
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
// whether it succeeded. A writer winning the race between the registration
// and the re-check causes a rollback and failure.
func (rw *RWMutex) TryRLock() bool {
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
func (rw *RWMutex) RUnlock() {
	if checksEnabled && rw.owner.Load() != 0 {
		panic("spinlock: RUnlock of write-locked RWMutex")
	}
	rw.readers.Add(-1)
}

// Locked reports whether any reader or writer currently holds the lock.
// The result is a racy snapshot for diagnostics only.
func (rw *RWMutex) Locked() bool {
	return rw.writing.Load() || rw.readers.Load() > 0
}

// WriteLocked reports whether a writer currently holds the lock.
// Diagnostics only.
func (rw *RWMutex) WriteLocked() bool {
	return rw.writing.Load()
}

// ReaderCount returns the number of active read holders. Diagnostics only.
func (rw *RWMutex) ReaderCount() int32 {
	return rw.readers.Load()
}

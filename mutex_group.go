package spinlock

import (
	"github.com/llxisdsh/pb"
)

// MutexGroup allows exclusive locking on arbitrary keys (string, int,
// struct, etc.). It dynamically manages a set of [Mutex] instances
// associated with values.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: Locks are automatically removed from memory when
//     released and no one else is waiting.
//   - Low Overhead: Uses a sharded map structure internally for concurrent
//     access.
//
// Usage:
//
//	var group MutexGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// Implementation Note:
// It uses reference counting to safely delete entries.
type MutexGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *mutexGroupEntry]
}

type mutexGroupEntry struct {
	mu  Mutex
	ref int32
}

// Lock acquires the lock for key k, creating it on first use.
func (g *MutexGroup[K]) Lock(k K) {
	g.acquire(k).mu.Lock()
}

// TryLock makes a single attempt to acquire the lock for key k and reports
// whether it succeeded.
func (g *MutexGroup[K]) TryLock(k K) bool {
	if g.acquire(k).mu.TryLock() {
		return true
	}
	g.release(k)
	return false
}

// Unlock releases the lock for key k. Unlocking a key that is not present
// is a no-op.
func (g *MutexGroup[K]) Unlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Unlock()
	g.release(k)
}

// acquire registers interest in k and returns its entry, creating one if
// needed. The ref count keeps the entry alive while waiters are spinning on
// it, so a key is never served by two different Mutex instances at once.
func (g *MutexGroup[K]) acquire(k K) *mutexGroupEntry {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *mutexGroupEntry]) (*pb.EntryOf[K, *mutexGroupEntry], *mutexGroupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			val := &mutexGroupEntry{ref: 1}
			return &pb.EntryOf[K, *mutexGroupEntry]{Value: val}, val, false
		},
	)
	return v
}

func (g *MutexGroup[K]) release(k K) {
	_, _ = g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *mutexGroupEntry]) (*pb.EntryOf[K, *mutexGroupEntry], *mutexGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}

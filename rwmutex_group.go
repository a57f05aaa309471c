package spinlock

import (
	"github.com/llxisdsh/pb"
)

// RWMutexGroup allows shared reader-writer locking on arbitrary keys.
// It matches the interface of [MutexGroup] but supports RLock/RUnlock.
//
// Features:
//   - RLock/RUnlock for shared read access.
//   - Lock/Unlock for exclusive write access.
//   - Infinite Keys & Auto-Cleanup.
//
// Usage:
//
//	var group RWMutexGroup[string]
//
//	// Readers
//	group.RLock("config")
//	read(config)
//	group.RUnlock("config")
//
//	// Writer
//	group.Lock("config")
//	write(config)
//	group.Unlock("config")
type RWMutexGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *rwMutexGroupEntry]
}

type rwMutexGroupEntry struct {
	mu  RWMutex
	ref int32
}

// Lock acquires the write lock for key k, creating it on first use.
func (g *RWMutexGroup[K]) Lock(k K) {
	g.acquire(k).mu.Lock()
}

// TryLock makes a single attempt to acquire the write lock for key k and
// reports whether it succeeded.
func (g *RWMutexGroup[K]) TryLock(k K) bool {
	if g.acquire(k).mu.TryLock() {
		return true
	}
	g.release(k)
	return false
}

// Unlock releases the write lock for key k. Unlocking a key that is not
// present is a no-op.
func (g *RWMutexGroup[K]) Unlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Unlock()
	g.release(k)
}

// RLock acquires a read lock for key k, creating it on first use.
func (g *RWMutexGroup[K]) RLock(k K) {
	g.acquire(k).mu.RLock()
}

// TryRLock makes a single attempt to acquire a read lock for key k and
// reports whether it succeeded.
func (g *RWMutexGroup[K]) TryRLock(k K) bool {
	if g.acquire(k).mu.TryRLock() {
		return true
	}
	g.release(k)
	return false
}

// RUnlock releases a read lock for key k. Unlocking a key that is not
// present is a no-op.
func (g *RWMutexGroup[K]) RUnlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.RUnlock()
	g.release(k)
}

func (g *RWMutexGroup[K]) acquire(k K) *rwMutexGroupEntry {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *rwMutexGroupEntry]) (*pb.EntryOf[K, *rwMutexGroupEntry], *rwMutexGroupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			val := &rwMutexGroupEntry{ref: 1}
			return &pb.EntryOf[K, *rwMutexGroupEntry]{Value: val}, val, false
		},
	)
	return v
}

func (g *RWMutexGroup[K]) release(k K) {
	_, _ = g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *rwMutexGroupEntry]) (*pb.EntryOf[K, *rwMutexGroupEntry], *rwMutexGroupEntry, bool) {
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

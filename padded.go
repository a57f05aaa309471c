package spinlock

import (
	"unsafe"

	"github.com/lockyard/spinlock/internal/opt"
)

// PaddedMutex is a [Mutex] padded out to a full cache line.
//
// Use it for arrays of locks (striping), where adjacent elements would
// otherwise share a cache line and every acquisition would invalidate the
// neighbors' line.
//
// Size: one cache line.
type PaddedMutex struct {
	Mutex
	_ [(opt.CacheLineSize - unsafe.Sizeof(Mutex{})%opt.CacheLineSize) % opt.CacheLineSize]byte
}

// PaddedRWMutex is an [RWMutex] padded out to a full cache line.
//
// Size: one cache line.
type PaddedRWMutex struct {
	RWMutex
	_ [(opt.CacheLineSize - unsafe.Sizeof(RWMutex{})%opt.CacheLineSize) % opt.CacheLineSize]byte
}

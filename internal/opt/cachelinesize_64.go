//go:build spinlock_cachelinesize_64

package opt

// CacheLineSize is force-set to 64 bytes via the spinlock_cachelinesize_64
// build tag, overriding the automatic detection.
// Use: go build -tags=spinlock_cachelinesize_64
const CacheLineSize = 64

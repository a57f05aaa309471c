//go:build spinlock_cachelinesize_128

package opt

// CacheLineSize is force-set to 128 bytes via the spinlock_cachelinesize_128
// build tag, overriding the automatic detection. Useful on arm64 where some
// cores prefetch line pairs.
// Use: go build -tags=spinlock_cachelinesize_128
const CacheLineSize = 128

//go:build !spinlock_nocheck

package spinlock

// checksEnabled gates the ownership and balance checks in the Unlock paths.
// Checks are compiled in by default; the spinlock_nocheck build tag removes
// them together with their gid() reads.
// Use: go build -tags=spinlock_nocheck
const checksEnabled = true

//go:build spinlock_nocheck

package spinlock

// checksEnabled is force-disabled via the spinlock_nocheck build tag.
// Misuse (unlocking a lock the caller does not hold) is then undefined
// behavior.
const checksEnabled = false

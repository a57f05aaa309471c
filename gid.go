package spinlock

import (
	"github.com/petermattis/goid"
)

// gid returns the id of the calling goroutine.
//
// The runtime assigns goroutine ids starting from 1 and never reuses an id
// while its goroutine is alive, so 0 is free to act as the "no owner"
// sentinel in the lock owner fields.
func gid() int64 {
	return goid.Get()
}

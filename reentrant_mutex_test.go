package spinlock

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestReentrantMutex_Depth(t *testing.T) {
	var mu ReentrantMutex

	const depth = 5
	for i := range depth {
		mu.Lock()
		if got := mu.ReentrantCount(); got != int32(i+1) {
			t.Fatalf("depth = %d, want %d", got, i+1)
		}
	}
	if mu.Owner() != gid() {
		t.Fatalf("owner = %d, want %d", mu.Owner(), gid())
	}
	for i := depth; i > 0; i-- {
		if !mu.Locked() {
			t.Fatalf("unlocked at depth %d", i)
		}
		mu.Unlock()
	}
	if mu.Locked() || mu.Owner() != 0 || mu.ReentrantCount() != 0 {
		t.Fatal("lock not back to baseline after full release")
	}
}

func TestReentrantMutex_TryLockReentry(t *testing.T) {
	var mu ReentrantMutex
	if !mu.TryLock() {
		t.Fatal("TryLock failed on free lock")
	}
	if !mu.TryLock() {
		t.Fatal("TryLock failed for current owner")
	}
	if got := mu.ReentrantCount(); got != 2 {
		t.Fatalf("depth = %d, want 2", got)
	}
	mu.Unlock()
	mu.Unlock()
}

// Walks the scenario: A locks, B fails, A relocks (depth 2), partial release
// still excludes B, full release lets B in.
func TestReentrantMutex_TwoGoroutines(t *testing.T) {
	var mu ReentrantMutex

	req := make(chan struct{})
	res := make(chan bool)
	go func() {
		for range req {
			ok := mu.TryLock()
			if ok {
				mu.Unlock()
			}
			res <- ok
		}
	}()
	tryLock := func() bool {
		req <- struct{}{}
		return <-res
	}
	defer close(req)

	mu.Lock()
	if tryLock() {
		t.Fatal("TryLock succeeded while lock held")
	}
	mu.Lock()
	if got := mu.ReentrantCount(); got != 2 {
		t.Fatalf("depth = %d, want 2", got)
	}
	mu.Unlock()
	if tryLock() {
		t.Fatal("TryLock succeeded after partial release")
	}
	mu.Unlock()
	if !tryLock() {
		t.Fatal("TryLock failed after full release")
	}
}

func TestReentrantMutex_Exclusion(t *testing.T) {
	var mu ReentrantMutex
	var holders int32
	counter := 0

	const loops = 500
	n := runtime.GOMAXPROCS(0)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		depth := 1 + i%3
		go func() {
			defer wg.Done()
			for range loops {
				for range depth {
					mu.Lock()
				}
				if atomic.AddInt32(&holders, 1) != 1 {
					t.Errorf("multiple holders inside critical section")
				}
				counter++
				atomic.AddInt32(&holders, -1)
				for range depth {
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if counter != n*loops {
		t.Fatalf("counter = %d, want %d", counter, n*loops)
	}
}

func TestReentrantMutex_UnlockByOtherPanics(t *testing.T) {
	var mu ReentrantMutex
	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		mu.Lock()
		close(locked)
		<-release
		mu.Unlock()
	}()
	<-locked

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Unlock by non-owner did not panic")
			}
		}()
		mu.Unlock()
	}()

	close(release)
}

func TestReentrantMutex_UnbalancedUnlockPanics(t *testing.T) {
	var mu ReentrantMutex
	mu.Lock()
	mu.Unlock()
	defer func() {
		if recover() == nil {
			t.Fatal("extra Unlock did not panic")
		}
	}()
	mu.Unlock()
}

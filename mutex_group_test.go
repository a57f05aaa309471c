package spinlock

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestMutexGroupBasic(t *testing.T) {
	var g MutexGroup[string]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	counter := 0
	for range n {
		go func() {
			defer wg.Done()
			g.Lock("k")
			counter++
			g.Unlock("k")
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestMutexGroup_IndependentKeys(t *testing.T) {
	var g MutexGroup[string]
	g.Lock("a")

	done := make(chan struct{})
	go func() {
		g.Lock("b") // Different key, must not block
		g.Unlock("b")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Lock on independent key blocked")
	}

	blocked := make(chan struct{})
	go func() {
		g.Lock("a") // Should block
		close(blocked)
		g.Unlock("a")
	}()
	select {
	case <-blocked:
		t.Fatal("Lock acquired while same key held")
	case <-time.After(10 * time.Millisecond):
	}
	g.Unlock("a")

	select {
	case <-blocked:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Lock not acquired after Unlock")
	}
}

func TestMutexGroup_TryLock(t *testing.T) {
	var g MutexGroup[int]

	if !g.TryLock(1) {
		t.Fatal("TryLock failed on free key")
	}

	locked := make(chan bool)
	go func() {
		locked <- g.TryLock(1)
	}()
	if <-locked {
		t.Fatal("TryLock succeeded on held key")
	}
	g.Unlock(1)

	// A failed TryLock must not leak its entry.
	if _, ok := g.m.Load(1); ok {
		t.Fatal("entry not cleaned up after release")
	}
}

func TestMutexGroup_RefCounting(t *testing.T) {
	var g MutexGroup[int]

	g.Lock(1)
	if _, ok := g.m.Load(1); !ok {
		t.Fatal("entry should exist while locked")
	}
	g.Unlock(1)
	if _, ok := g.m.Load(1); ok {
		t.Fatal("entry should be auto-deleted after Unlock (ref=0)")
	}

	// Unlock of an absent key is a no-op.
	g.Unlock(42)
}

func TestMutexGroup_Stress(t *testing.T) {
	var g MutexGroup[string]

	const keys = 8
	const loops = 200
	counters := make(map[string]*int, keys)
	for i := range keys {
		counters[fmt.Sprintf("key-%d", i)] = new(int)
	}

	var eg errgroup.Group
	for i := range keys * 4 {
		k := fmt.Sprintf("key-%d", i%keys)
		eg.Go(func() error {
			for range loops {
				g.Lock(k)
				// The ref count must keep the entry alive while held.
				if _, ok := g.m.Load(k); !ok {
					return fmt.Errorf("no live entry for held key %s", k)
				}
				*counters[k]++
				g.Unlock(k)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	for k, c := range counters {
		if *c != 4*loops {
			t.Fatalf("counter[%s] = %d, want %d", k, *c, 4*loops)
		}
	}
	for i := range keys {
		if _, ok := g.m.Load(fmt.Sprintf("key-%d", i)); ok {
			t.Fatalf("entry key-%d not cleaned up", i)
		}
	}
}

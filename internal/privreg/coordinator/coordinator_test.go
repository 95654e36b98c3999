package coordinator

import (
	"sync"
	"testing"
	"time"

	"github.com/kolkov/privreg/internal/privreg/blockalloc"
	"github.com/kolkov/privreg/internal/privreg/instance"
	"github.com/kolkov/privreg/internal/privreg/roster"
)

func newTestCoordinator() *Coordinator {
	var p instance.Pair
	p.Init(blockalloc.Default{})
	return New(roster.New(), &p)
}

func TestAcquireReleaseReadRoundTrip(t *testing.T) {
	c := newTestCoordinator()
	idx, node := c.AcquireRead()
	if idx != 0 {
		t.Fatalf("idx = %d, want 0", idx)
	}
	if node.Status() != 0 {
		t.Fatalf("node status = %d, want 0", node.Status())
	}
	c.ReleaseRead(node)
	if node.Status() != roster.Idle {
		t.Fatalf("node status after release = %d, want Idle", node.Status())
	}
}

func TestWriteSessionExcludesConcurrentWriters(t *testing.T) {
	c := newTestCoordinator()
	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.WriteSession(func(*Coordinator) {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("observed %d concurrent writers inside WriteSession, want 1", maxInside)
	}
}

func TestAwaitQuiescenceWaitsForReadersToMoveOff(t *testing.T) {
	c := newTestCoordinator()
	idx, node := c.AcquireRead()

	done := make(chan struct{})
	go func() {
		c.AwaitQuiescence(idx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("AwaitQuiescence returned before the reader released")
	case <-time.After(20 * time.Millisecond):
	}

	c.ReleaseRead(node)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AwaitQuiescence did not return after reader released")
	}
}

func TestAwaitQuiescenceIgnoresOtherInstanceReaders(t *testing.T) {
	c := newTestCoordinator()
	// A reader on instance 1 (the "other" instance) must not block a
	// quiescence wait for instance 0.
	otherNode := c.Roster.EnsureLocal()
	otherNode.SetStatus(1)

	done := make(chan struct{})
	go func() {
		c.AwaitQuiescence(0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AwaitQuiescence blocked on a reader of a different instance")
	}
}

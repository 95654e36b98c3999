// Package coordinator implements the registry's read/write
// synchronization scheme: lock-free, revalidated reads against a
// double-buffered instance pair, and a writer that grows the
// non-current instance, swaps it in, then spins until every reader has
// moved off the old index.
//
// This is deliberately not sync.RWMutex: readers never block a writer
// and a writer never blocks a reader mid-read. The only blocking is
// writer-vs-writer (via WriteSession) and the writer's own quiescence
// wait, which yields rather than spins hard.
package coordinator

import (
	"runtime"
	"sync"

	"github.com/kolkov/privreg/internal/privreg/instance"
	"github.com/kolkov/privreg/internal/privreg/roster"
)

// Yielder cooperatively deschedules the calling goroutine. runtime.Gosched
// is the Go stand-in for the host runtime's chpl_task_yield.
type Yielder interface {
	Yield()
}

// GoschedYielder yields via runtime.Gosched.
type GoschedYielder struct{}

// Yield deschedules the calling goroutine briefly.
func (GoschedYielder) Yield() { runtime.Gosched() }

// Coordinator ties a roster, an instance pair, and a writer mutex
// together. Roster, Pair and Yield are exported; the writer mutex is
// not, and all synchronization goes through AcquireRead/ReleaseRead and
// the WriteSession helper.
type Coordinator struct {
	Roster  *roster.Roster
	Pair    *instance.Pair
	Yield   Yielder
	writeMu sync.Mutex
}

// New builds a Coordinator over an already-initialized roster and pair.
func New(r *roster.Roster, p *instance.Pair) *Coordinator {
	return &Coordinator{Roster: r, Pair: p, Yield: GoschedYielder{}}
}

// AcquireRead implements the revalidation loop: load
// the current index, publish it as this goroutine's status, then
// re-load the index. If it changed, a writer may be mid-swap; loop until
// the published status agrees with the freshly observed index.
//
// The returned index is safe to use for the remainder of one read
// critical section: a concurrent grow will see this goroutine's status
// and wait for it to move off before freeing the corresponding
// instance's blocks vector.
func (c *Coordinator) AcquireRead() (idx int32, node *roster.Node) {
	node = c.Roster.EnsureLocal()
	for {
		idx = c.Pair.CurrentIdx()
		node.SetStatus(idx)
		if c.Pair.CurrentIdx() == idx {
			return idx, node
		}
	}
}

// ReleaseRead ends a read critical section. It unconditionally resets
// status to Idle; nested read sections on the same goroutine are not
// supported.
func (c *Coordinator) ReleaseRead(node *roster.Node) {
	node.SetStatus(roster.Idle)
}

// WriteSession runs fn while holding the writer mutex. fn receives the
// coordinator so it can read the current instance, publish a new one,
// and wait for quiescence; it must not call AcquireRead/ReleaseRead
// itself (the write path in core.Registry.Publish always releases its
// read section before entering WriteSession).
func (c *Coordinator) WriteSession(fn func(c *Coordinator)) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	fn(c)
}

// AwaitQuiescence blocks (yielding, never spinning hard) until no
// roster node reports status == oldIdx. It must be called by a writer
// that already holds the writer mutex and has published the new
// current index, so that any reader that acquires after the publish
// will observe the new index instead of oldIdx.
func (c *Coordinator) AwaitQuiescence(oldIdx int32) {
	c.Roster.Range(func(n *roster.Node) {
		for n.Status() == oldIdx {
			c.Yield.Yield()
		}
	})
}

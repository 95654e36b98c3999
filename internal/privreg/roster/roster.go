// Package roster implements the reader TLS roster: an intrusive,
// CAS-linked list of per-goroutine status nodes that the write path
// scans to wait for quiescence.
//
// Go has no pthread_key_create equivalent, so EnsureLocal below stands
// in for the C original's pthread_setspecific binding by keying a small
// cache on the calling goroutine's id (see goroutineID in goid.go). The
// roster itself remains the explicit singly linked list the coordinator
// needs to enumerate; the goroutine-id cache only saves the list walk on
// the hot path.
package roster

import (
	"sync"
	"sync/atomic"
)

// Idle is the status value a node holds when its goroutine is not
// inside a read critical section.
const Idle int32 = -1

// Node is one thread's (goroutine's) slot in the roster. Nodes are
// never freed or removed; once allocated they persist for the life of
// the process. reclaimOrCreate adopts a node whose inUse is false, but
// nothing in this package ever resets inUse, so each goroutine that
// calls EnsureLocal for the first time gets a newly allocated node.
type Node struct {
	inUse  atomic.Bool
	status atomic.Int32
	next   atomic.Pointer[Node]
}

// Status returns the instance index this node's goroutine is currently
// reading, or Idle if it is not reading.
func (n *Node) Status() int32 { return n.status.Load() }

// SetStatus publishes which instance this node's goroutine is reading.
// Only the owning goroutine ever calls this.
func (n *Node) SetStatus(v int32) { n.status.Store(v) }

// Roster is the process-wide list of TLS nodes plus the goroutine-id
// cache that lets EnsureLocal skip the list walk on repeat calls.
type Roster struct {
	head atomic.Pointer[Node]

	// cache maps goroutine id -> *Node, standing in for the pthread
	// TLS key -> node binding. It is purely an optimization: losing an
	// entry (e.g. under adversarial goroutine-id reuse races) only
	// costs an extra reclaim-or-create pass, never correctness.
	cache sync.Map // map[int64]*Node
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{}
}

// EnsureLocal returns the calling goroutine's node, creating or
// reclaiming one on first use.
func (r *Roster) EnsureLocal() *Node {
	gid := goroutineID()

	if v, ok := r.cache.Load(gid); ok {
		return v.(*Node)
	}

	node := r.reclaimOrCreate()
	actual, _ := r.cache.LoadOrStore(gid, node)
	return actual.(*Node)
}

// reclaimOrCreate walks the list for a free node and CAS's it to in-use;
// if none is free, it allocates a new node and CAS-splices it at the
// head.
func (r *Roster) reclaimOrCreate() *Node {
	for n := r.head.Load(); n != nil; n = n.next.Load() {
		if n.inUse.CompareAndSwap(false, true) {
			return n
		}
	}

	node := &Node{}
	node.status.Store(Idle)
	node.inUse.Store(true)

	for {
		old := r.head.Load()
		node.next.Store(old)
		if r.head.CompareAndSwap(old, node) {
			return node
		}
	}
}

// Range calls fn for every node ever allocated in the roster, including
// currently-idle ones. Used by the writer's quiescence scan.
func (r *Roster) Range(fn func(*Node)) {
	for n := r.head.Load(); n != nil; n = n.next.Load() {
		fn(n)
	}
}

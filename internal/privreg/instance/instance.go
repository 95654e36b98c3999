// Package instance implements the double-buffered instance pair the
// coordinator swaps between on every grow.
//
// Exactly one of the two instances is "current" at any moment, named by
// an atomic index. The non-current instance is scratch space the writer
// rebuilds during a grow before publishing it with a single atomic
// store.
package instance

import (
	"sync/atomic"

	"github.com/kolkov/privreg/internal/privreg/blockalloc"
)

// Instance is a snapshot of the block vector: a length and the block
// references live at that length. Indexing by blockIdx < Len yields the
// owning block; blockIdx >= Len means "not yet allocated in this
// generation".
type Instance struct {
	Blocks []*blockalloc.Block
	Len    int
}

// Pair holds the two instance generations and the atomic index naming
// which one is current. The zero Pair is not usable; call Init first.
type Pair struct {
	slots   [2]atomic.Pointer[Instance]
	current atomic.Int32
}

// Init installs the first instance (a single fresh block) as current
// and initializes the other slot to (nil, 0), since it may be read
// (Len compared, never dereferenced) before its first grow.
func (p *Pair) Init(alloc blockalloc.Allocator) {
	p.slots[0].Store(&Instance{Blocks: alloc.NewBlocks(1), Len: 1})
	p.slots[1].Store(&Instance{})
	p.current.Store(0)
}

// CurrentIdx returns the index (0 or 1) of the current instance. Callers
// on the read path must use this together with a status publication
// (see coordinator) to be race-safe; Pair alone does not synchronize
// against concurrent Publish.
func (p *Pair) CurrentIdx() int32 {
	return p.current.Load()
}

// At returns the instance stored in slot i (0 or 1). The returned
// pointer is stable: Publish installs a new *Instance value rather than
// mutating the one readers may be holding.
func (p *Pair) At(i int32) *Instance {
	return p.slots[i].Load()
}

// Publish installs inst into slot i and then atomically names i as the
// current instance. This store is the sole linearization point for a
// grow: no reader may observe inst's blocks before this call returns.
func (p *Pair) Publish(i int32, inst *Instance) {
	p.slots[i].Store(inst)
	p.current.Store(i)
}

// Other returns the slot index that is not idx.
func Other(idx int32) int32 { return 1 - idx }

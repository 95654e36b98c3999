// Package core implements the privatized-object registry's read/write
// engine: block/slot arithmetic, growth, and the public Publish/Get/
// Clear/Capacity operations. The registry package is a thin wrapper
// exposing this as the module's public API.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kolkov/privreg/internal/privreg/blockalloc"
	"github.com/kolkov/privreg/internal/privreg/coordinator"
	"github.com/kolkov/privreg/internal/privreg/instance"
	"github.com/kolkov/privreg/internal/privreg/roster"
)

// BlockSize is the number of slots per block. It is a
// compile-time constant; nothing in this package may change it after
// Init.
const BlockSize = blockalloc.BlockSize

// Options configures a Registry at construction time. The zero value
// selects the stock allocator, a no-op metrics recorder, a no-op growth
// recorder, and the default slog logger.
type Options struct {
	Allocator      blockalloc.Allocator
	Metrics        MetricsRecorder
	GrowthRecorder GrowthRecorder
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Allocator == nil {
		o.Allocator = blockalloc.Default{}
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.GrowthRecorder == nil {
		o.GrowthRecorder = NoopGrowthRecorder{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Registry is the privatized-object registry: a concurrent pid -> value
// map with lock-free reads and grow-by-swap writes. The zero Registry is
// not usable; construct one with New.
type Registry struct {
	pair   instance.Pair
	coord  *coordinator.Coordinator
	alloc  blockalloc.Allocator
	opts   Options
	inited bool

	// id distinguishes this instance in structured logs when a host
	// embeds more than one Registry (registry.New rather than
	// registry.Default).
	id string
}

// New constructs and initializes a Registry. This corresponds to
// the registry's init: it allocates instance 0 with a single fresh block,
// leaves instance 1 empty until the first grow, and sets
// currentInstanceIdx to 0.
func New(opts Options) *Registry {
	opts = opts.withDefaults()
	r := &Registry{alloc: opts.Allocator, opts: opts}
	r.pair.Init(r.alloc)
	roster := roster.New()
	r.coord = coordinator.New(roster, &r.pair)
	r.inited = true
	r.id = uuid.New().String()

	r.opts.Logger.Debug("privreg: initialized",
		slog.String("registry_id", r.id),
		slog.Int("block_size", BlockSize))
	return r
}

func (r *Registry) requireInit() {
	if !r.inited {
		panic(fmt.Errorf("%w", ErrNotInitialized))
	}
}

func requireNonNegative(pid int64) {
	if pid < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativePid, pid))
	}
}

func blockAndSlot(pid int64) (blockIdx, slotIdx int) {
	return int(pid / BlockSize), int(pid % BlockSize)
}

// Publish stores ptr at pid, growing the registry if pid's block does
// not exist yet. It implements a read-then-upgrade loop: the fast path
// (block already exists) never touches the writer mutex.
func (r *Registry) Publish(pid int64, ptr any) {
	r.requireInit()
	requireNonNegative(pid)
	blockIdx, slotIdx := blockAndSlot(pid)

	for {
		idx, node := r.coord.AcquireRead()
		inst := r.pair.At(idx)

		if blockIdx >= inst.Len {
			r.coord.ReleaseRead(node)
			r.grow(blockIdx + 1)
			continue
		}

		inst.Blocks[blockIdx][slotIdx] = ptr
		r.coord.ReleaseRead(node)
		r.opts.Metrics.RecordPublish(context.Background())
		return
	}
}

// Get returns the current value at pid, or nil if it was never
// published (or was cleared).
func (r *Registry) Get(pid int64) any {
	r.requireInit()
	requireNonNegative(pid)
	blockIdx, slotIdx := blockAndSlot(pid)

	idx, node := r.coord.AcquireRead()
	defer r.coord.ReleaseRead(node)

	inst := r.pair.At(idx)
	if blockIdx >= inst.Len {
		r.opts.Metrics.RecordRead(context.Background())
		return nil
	}
	v := inst.Blocks[blockIdx][slotIdx]
	r.opts.Metrics.RecordRead(context.Background())
	return v
}

// Clear overwrites pid's slot with nil. Clearing an unpublished pid is a
// no-op store of nil.
func (r *Registry) Clear(pid int64) {
	r.requireInit()
	requireNonNegative(pid)
	blockIdx, slotIdx := blockAndSlot(pid)

	idx, node := r.coord.AcquireRead()
	defer r.coord.ReleaseRead(node)

	inst := r.pair.At(idx)
	if blockIdx >= inst.Len {
		r.opts.Metrics.RecordRead(context.Background())
		return
	}
	inst.Blocks[blockIdx][slotIdx] = nil
	r.opts.Metrics.RecordRead(context.Background())
}

// Capacity returns len(currentInstance)*BlockSize, an upper bound used
// only for leak detection.
func (r *Registry) Capacity() int64 {
	r.requireInit()
	idx, node := r.coord.AcquireRead()
	defer r.coord.ReleaseRead(node)
	return int64(r.pair.At(idx).Len) * BlockSize
}

// grow implements the write critical section: it
// serializes on the writer mutex, allocates a new blocks vector of at
// least minLen in the non-current slot, copies the old block
// references, fills the new suffix with fresh blocks, publishes the new
// instance via the atomic index swap, then waits for readers of the old
// index to move off before freeing the old blocks vector.
func (r *Registry) grow(minLen int) {
	r.coord.WriteSession(func(c *coordinator.Coordinator) {
		start := time.Now()
		instIdx := r.pair.CurrentIdx()
		old := r.pair.At(instIdx)

		// Another writer already grew far enough while we waited for
		// the mutex; nothing to do.
		if old.Len >= minLen {
			return
		}

		newIdx := instance.Other(instIdx)
		newBlocks := make([]*blockalloc.Block, minLen)
		copy(newBlocks, old.Blocks)
		for i := old.Len; i < minLen; i++ {
			newBlocks[i] = r.alloc.NewBlock()
		}

		newInst := &instance.Instance{Blocks: newBlocks, Len: minLen}
		r.pair.Publish(newIdx, newInst)

		c.AwaitQuiescence(instIdx)

		dur := time.Since(start)
		r.opts.Logger.Debug("privreg: grew",
			slog.String("registry_id", r.id),
			slog.Int("old_len", old.Len),
			slog.Int("new_len", minLen),
			slog.Duration("duration", dur))
		r.opts.Metrics.RecordGrow(context.Background(), old.Len, minLen, dur)
		r.opts.Metrics.RecordCapacity(context.Background(), int64(minLen)*BlockSize)
		if err := r.opts.GrowthRecorder.RecordGrowth(context.Background(), GrowthEvent{
			OldLen:    old.Len,
			NewLen:    minLen,
			Duration:  dur,
			Timestamp: start,
		}); err != nil {
			r.opts.Logger.Warn("privreg: growth recorder failed", slog.String("error", err.Error()))
		}
	})
}

package registry

import (
	"log/slog"
	"sync"

	"github.com/kolkov/privreg/internal/privreg/blockalloc"
	"github.com/kolkov/privreg/internal/privreg/core"
)

// BlockSize is the number of slots per block. It is fixed at compile
// time; nothing in this package allows changing it after construction.
const BlockSize = core.BlockSize

// Registry is a concurrent pid -> value map with lock-free reads and
// grow-by-swap writes. Construct one with New, or use the process-wide
// singleton returned by Default.
type Registry struct {
	inner *core.Registry
}

// Option configures a Registry at construction time.
type Option func(*core.Options)

// WithAllocator overrides the block/vector allocator. The default
// allocates plain Go slices via make, which is already zero-filling.
func WithAllocator(a blockalloc.Allocator) Option {
	return func(o *core.Options) { o.Allocator = a }
}

// WithMetrics attaches a metrics recorder (see obsmetrics.New for an
// OpenTelemetry-backed one). The default discards all metrics.
func WithMetrics(m core.MetricsRecorder) Option {
	return func(o *core.Options) { o.Metrics = m }
}

// WithGrowthRecorder attaches an audit sink for grow events (see
// audit.NewSQLiteRecorder). The default discards all events.
func WithGrowthRecorder(r core.GrowthRecorder) Option {
	return func(o *core.Options) { o.GrowthRecorder = r }
}

// WithLogger attaches a structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *core.Options) { o.Logger = l }
}

// New constructs and initializes an independent Registry. Most programs
// should prefer Default unless they specifically need more than one
// registry (e.g. isolated tests).
func New(opts ...Option) *Registry {
	var o core.Options
	for _, apply := range opts {
		apply(&o)
	}
	return &Registry{inner: core.New(o)}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry singleton, initializing it
// on first call. Subsequent calls return the same instance.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
	})
	return defaultReg
}

// Publish stores value at pid, growing the registry if needed. pid must
// be non-negative; a negative pid panics, since pids are assigned by an
// external compiler pass and a negative one indicates a programmer
// error upstream of this package.
func (r *Registry) Publish(pid int64, value any) {
	r.inner.Publish(pid, value)
}

// Get returns the value currently stored at pid, or nil if pid has
// never been published (or was cleared).
func (r *Registry) Get(pid int64) any {
	return r.inner.Get(pid)
}

// Clear overwrites pid's slot with nil. Clearing an unpublished pid is a
// no-op.
func (r *Registry) Clear(pid int64) {
	r.inner.Clear(pid)
}

// Capacity returns an upper bound on the number of pids the registry can
// currently hold without growing. It is intended for leak detection
// only, not for capacity planning.
func (r *Registry) Capacity() int64 {
	return r.inner.Capacity()
}

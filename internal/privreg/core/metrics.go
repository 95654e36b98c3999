package core

import (
	"context"
	"time"
)

// MetricsRecorder observes registry activity. Implementations must be
// safe for concurrent use since Get/Publish/Clear are called from many
// goroutines. The default is NoopMetrics; obsmetrics.New wires an
// OpenTelemetry-backed implementation of this interface.
type MetricsRecorder interface {
	// RecordRead is called once per Get/Clear read critical section.
	RecordRead(ctx context.Context)

	// RecordPublish is called once per successful Publish store.
	RecordPublish(ctx context.Context)

	// RecordGrow is called once per completed grow cycle.
	RecordGrow(ctx context.Context, oldLen, newLen int, dur time.Duration)

	// RecordCapacity is called with the current capacity after any
	// change to it.
	RecordCapacity(ctx context.Context, capacity int64)
}

// NoopMetrics discards everything. It is the default MetricsRecorder.
type NoopMetrics struct{}

func (NoopMetrics) RecordRead(context.Context)                          {}
func (NoopMetrics) RecordPublish(context.Context)                       {}
func (NoopMetrics) RecordGrow(context.Context, int, int, time.Duration) {}
func (NoopMetrics) RecordCapacity(context.Context, int64)               {}

// GrowthEvent describes one completed grow cycle, for offline
// leak/growth diagnostics. It carries no information the registry
// itself needs after recording it.
type GrowthEvent struct {
	OldLen    int
	NewLen    int
	Duration  time.Duration
	Timestamp time.Time
}

// GrowthRecorder persists GrowthEvents for later inspection. This is a
// pure side channel: nothing in the registry's correctness depends on a
// GrowthRecorder succeeding, and the default is a no-op.
type GrowthRecorder interface {
	RecordGrowth(ctx context.Context, ev GrowthEvent) error
}

// NoopGrowthRecorder discards every event. It is the default
// GrowthRecorder.
type NoopGrowthRecorder struct{}

func (NoopGrowthRecorder) RecordGrowth(context.Context, GrowthEvent) error { return nil }

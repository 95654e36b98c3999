// Package obsmetrics wires the registry's core.MetricsRecorder interface
// to OpenTelemetry, following the same lazy-meter-init, no-op-on-failure
// pattern used elsewhere in this codebase's ecosystem for optional
// observability.
package obsmetrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kolkov/privreg/internal/privreg/core"
)

// otelMetrics implements core.MetricsRecorder using the global OTel
// meter provider.
type otelMetrics struct {
	reads       metric.Int64Counter
	publishes   metric.Int64Counter
	grows       metric.Int64Counter
	growLatency metric.Float64Histogram
	capacity    metric.Int64Gauge
}

var (
	once      sync.Once
	singleton *otelMetrics
	initErr   error
)

func getSingleton() (*otelMetrics, error) {
	once.Do(func() {
		singleton, initErr = build()
	})
	return singleton, initErr
}

func build() (*otelMetrics, error) {
	meter := otel.Meter("privreg")

	reads, err := meter.Int64Counter("privreg.reads",
		metric.WithDescription("Number of Get/Clear read critical sections"))
	if err != nil {
		return nil, err
	}

	publishes, err := meter.Int64Counter("privreg.publishes",
		metric.WithDescription("Number of successful Publish stores"))
	if err != nil {
		return nil, err
	}

	grows, err := meter.Int64Counter("privreg.grows",
		metric.WithDescription("Number of completed grow cycles"))
	if err != nil {
		return nil, err
	}

	growLatency, err := meter.Float64Histogram("privreg.grow.latency_ms",
		metric.WithDescription("Grow cycle latency including quiescence wait"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	capacity, err := meter.Int64Gauge("privreg.capacity",
		metric.WithDescription("Current registry capacity (len*BlockSize)"))
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		reads:       reads,
		publishes:   publishes,
		grows:       grows,
		growLatency: growLatency,
		capacity:    capacity,
	}, nil
}

// New returns a core.MetricsRecorder backed by OpenTelemetry. Configure
// the meter provider with otel.SetMeterProvider before calling this; if
// instrument creation fails, New logs a warning and returns
// core.NoopMetrics{} instead of propagating the error, matching this
// project's stance that observability failures must never affect
// registry correctness.
func New() core.MetricsRecorder {
	m, err := getSingleton()
	if err != nil {
		slog.Warn("obsmetrics: initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return core.NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordRead(ctx context.Context) {
	m.reads.Add(ctx, 1)
}

func (m *otelMetrics) RecordPublish(ctx context.Context) {
	m.publishes.Add(ctx, 1)
}

func (m *otelMetrics) RecordGrow(ctx context.Context, oldLen, newLen int, dur time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Int("old_len", oldLen),
		attribute.Int("new_len", newLen),
	}
	m.grows.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.growLatency.Record(ctx, float64(dur.Milliseconds()), metric.WithAttributes(attrs...))
}

func (m *otelMetrics) RecordCapacity(ctx context.Context, capacity int64) {
	m.capacity.Record(ctx, capacity)
}

package core

import "testing"

// BenchmarkGet measures the lock-free read fast path.
func BenchmarkGet(b *testing.B) {
	r := newTestRegistry()
	r.Publish(0, "seed")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Get(0)
	}
}

// BenchmarkPublishExistingBlock measures Publish on an already-sized
// region, which never touches the writer mutex.
func BenchmarkPublishExistingBlock(b *testing.B) {
	r := newTestRegistry()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Publish(0, i)
	}
}

// BenchmarkPublishGrow measures Publish when every call after the first
// (pid 0, already sized) forces a grow, isolating the cost of the write
// critical section.
func BenchmarkPublishGrow(b *testing.B) {
	r := newTestRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Publish(int64(i)*BlockSize, i)
	}
}

// BenchmarkGetParallel measures read throughput under contention from
// many concurrent readers.
func BenchmarkGetParallel(b *testing.B) {
	r := newTestRegistry()
	r.Publish(0, "seed")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Get(0)
		}
	})
}

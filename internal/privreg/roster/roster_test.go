package roster

import (
	"sync"
	"testing"
)

func TestEnsureLocalSameGoroutineReturnsSameNode(t *testing.T) {
	r := New()
	n1 := r.EnsureLocal()
	n2 := r.EnsureLocal()
	if n1 != n2 {
		t.Fatalf("EnsureLocal returned different nodes for the same goroutine")
	}
}

func TestEnsureLocalNewNodeIsIdle(t *testing.T) {
	r := New()
	n := r.EnsureLocal()
	if got := n.Status(); got != Idle {
		t.Fatalf("new node status = %d, want Idle (%d)", got, Idle)
	}
}

func TestEnsureLocalDistinctGoroutinesGetDistinctNodes(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	nodes := make([]*Node, 8)
	for i := range nodes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			nodes[i] = r.EnsureLocal()
		}(i)
	}
	wg.Wait()

	seen := make(map[*Node]bool)
	for _, n := range nodes {
		if n == nil {
			t.Fatal("nil node")
		}
		seen[n] = true
	}
	if len(seen) != len(nodes) {
		t.Fatalf("expected %d distinct nodes, got %d", len(nodes), len(seen))
	}
}

func TestRangeVisitsAllocatedNodes(t *testing.T) {
	r := New()
	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.EnsureLocal()
		}()
	}
	wg.Wait()

	count := 0
	r.Range(func(*Node) { count++ })
	if count < n {
		t.Fatalf("Range visited %d nodes, want at least %d", count, n)
	}
}

func TestParseGoroutineID(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"goroutine 1 [running]:\nmain.main()", 1},
		{"goroutine 12345 [chan receive]:\n", 12345},
		{"not a stack trace", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := parseGoroutineID([]byte(c.in)); got != c.want {
			t.Errorf("parseGoroutineID(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

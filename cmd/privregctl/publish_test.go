package main

import (
	"bytes"
	"testing"

	"github.com/kolkov/privreg/internal/privreg/obslog"
	"github.com/kolkov/privreg/registry"
)

// captureStdout redirects the package's stdout writer for the duration
// of fn and returns everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	defer func() { stdout = orig }()
	fn()
	return buf.String()
}

func TestPublishThenGet(t *testing.T) {
	sharedReg = registry.New(registry.WithLogger(obslog.New("error")))

	out := captureStdout(t, func() {
		if err := newPublishCmd().RunE(nil, []string{"1", "hello"}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("published pid=1")) {
		t.Fatalf("publish output = %q, missing expected text", out)
	}

	out = captureStdout(t, func() {
		if err := newGetCmd().RunE(nil, []string{"1"}); err != nil {
			t.Fatalf("get: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("hello")) {
		t.Fatalf("get output = %q, want it to contain %q", out, "hello")
	}
}

func TestClearRemovesValue(t *testing.T) {
	sharedReg = registry.New(registry.WithLogger(obslog.New("error")))
	sharedReg.Publish(2, "x")

	if err := newClearCmd().RunE(nil, []string{"2"}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := sharedReg.Get(2); got != nil {
		t.Fatalf("Get(2) after clear = %v, want nil", got)
	}
}

func TestStatsReportsCapacity(t *testing.T) {
	sharedReg = registry.New(registry.WithLogger(obslog.New("error")))
	out := captureStdout(t, func() {
		if err := newStatsCmd().RunE(nil, nil); err != nil {
			t.Fatalf("stats: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("capacity=")) {
		t.Fatalf("stats output = %q, missing capacity", out)
	}
}

func TestGetOfUnsetPidReportsUnset(t *testing.T) {
	sharedReg = registry.New(registry.WithLogger(obslog.New("error")))
	out := captureStdout(t, func() {
		if err := newGetCmd().RunE(nil, []string{"999"}); err != nil {
			t.Fatalf("get: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("unset")) {
		t.Fatalf("get output = %q, want it to mention unset", out)
	}
}

func TestDemoRunsEndToEnd(t *testing.T) {
	demoAuditPath = ""
	out := captureStdout(t, func() {
		if err := runDemo(nil); err != nil {
			t.Fatalf("demo: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("concurrent publishers consistent: true")) {
		t.Fatalf("demo output = %q, missing success line", out)
	}
}

func TestDemoWithAuditRecordsGrowthEvents(t *testing.T) {
	demoAuditPath = ":memory:"
	defer func() { demoAuditPath = "" }()

	out := captureStdout(t, func() {
		if err := runDemo(nil); err != nil {
			t.Fatalf("demo: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("growth events recorded:")) {
		t.Fatalf("demo output = %q, missing growth event summary", out)
	}
}

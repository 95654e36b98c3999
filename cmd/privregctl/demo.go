package main

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/kolkov/privreg/internal/privreg/audit"
	"github.com/kolkov/privreg/internal/privreg/obslog"
	"github.com/kolkov/privreg/internal/privreg/obsmetrics"
	"github.com/kolkov/privreg/registry"
)

var demoAuditPath string

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVar(&demoAuditPath, "audit-db", "", "Optional SQLite path to record growth events (use :memory: for a scratch run)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted publish/grow/read scenario against a fresh registry",
		Long: `demo builds its own Registry (independent of the shared one used by
get/publish/clear) with OTel metrics and, optionally, a SQLite growth audit
log attached, then drives a sparse fill, a forced grow, and a burst of
concurrent publishers before printing a summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
}

func runDemo(cmd *cobra.Command) error {
	opts := []registry.Option{
		registry.WithLogger(obslog.New(logLevel)),
		registry.WithMetrics(obsmetrics.New()),
	}

	var rec *audit.SQLiteRecorder
	if demoAuditPath != "" {
		var err error
		rec, err = audit.NewSQLiteRecorder(demoAuditPath)
		if err != nil {
			return err
		}
		defer rec.Close()
		opts = append(opts, registry.WithGrowthRecorder(rec))
	}

	r := registry.New(opts...)

	printInfo("initial capacity=%d\n", r.Capacity())

	r.Publish(5000, "A")
	r.Publish(1, "B")
	r.Publish(5000, "C")
	printInfo("after sparse fill: get(5000)=%v get(1)=%v get(0)=%v\n", r.Get(5000), r.Get(1), r.Get(0))

	before := r.Capacity()
	r.Publish(before, "boundary")
	printInfo("forced grow: capacity %d -> %d\n", before, r.Capacity())

	const writers = 16
	var wg sync.WaitGroup
	for tid := int64(0); tid < writers; tid++ {
		wg.Add(1)
		go func(tid int64) {
			defer wg.Done()
			r.Publish(tid, tid*10)
		}(tid)
	}
	wg.Wait()

	ok := true
	for tid := int64(0); tid < writers; tid++ {
		if r.Get(tid) != tid*10 {
			ok = false
		}
	}
	printInfo("concurrent publishers consistent: %v\n", ok)
	printInfo("final capacity=%d\n", r.Capacity())

	if rec != nil {
		n, err := rec.Count(context.Background())
		if err != nil {
			return err
		}
		printInfo("growth events recorded: %d\n", n)
	}

	return nil
}

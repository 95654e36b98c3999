package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/privreg/internal/privreg/obslog"
	"github.com/kolkov/privreg/registry"
)

var (
	verbose   bool
	logLevel  string
	sharedReg *registry.Registry

	// stdout is where subcommands print results. Tests swap this out to
	// capture output without spawning a subprocess.
	stdout io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "privregctl",
	Short: "Inspect and drive a privatized-object registry",
	Long: `privregctl exercises the privatized-object registry's public API
(publish, get, clear, capacity) against a single in-process instance shared
across the command's lifetime, for manual testing and demonstration.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		sharedReg = registry.New(registry.WithLogger(obslog.New(logLevel)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output flag (no subcommand reads it)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format, args...)
}

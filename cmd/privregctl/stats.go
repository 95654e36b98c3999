package main

import (
	"github.com/spf13/cobra"

	"github.com/kolkov/privreg/registry"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the registry's current capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("capacity=%d block_size=%d\n", sharedReg.Capacity(), registry.BlockSize)
			return nil
		},
	}
}

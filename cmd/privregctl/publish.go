package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPublishCmd())
}

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <pid> <value>",
		Short: "Publish a value at a pid, growing the registry if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			before := sharedReg.Capacity()
			sharedReg.Publish(pid, args[1])
			after := sharedReg.Capacity()

			printInfo("published pid=%d value=%q\n", pid, args[1])
			if after != before {
				printInfo("registry grew: capacity %d -> %d\n", before, after)
			}
			return nil
		},
	}
}

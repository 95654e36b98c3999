package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newClearCmd())
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <pid>",
		Short: "Overwrite a pid's slot with nil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			sharedReg.Clear(pid)
			printInfo("cleared pid=%d\n", pid)
			return nil
		},
	}
}

package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <pid>",
		Short: "Read the current value at a pid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			v := sharedReg.Get(pid)
			if v == nil {
				printInfo("pid=%d is unset\n", pid)
				return nil
			}
			printInfo("pid=%d value=%v\n", pid, v)
			return nil
		},
	}
}

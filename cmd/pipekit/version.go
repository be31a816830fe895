package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipekit/version"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), "pipekit", version.Full())
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version identifier")

	return cmd
}

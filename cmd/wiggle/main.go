package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "wiggle",
		Short: "Apply a drifted patch with best-effort relocation and three-way merge",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newWiggleCmd())
	root.AddCommand(newBrowseCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "wiggle 0.1.0-dev")
		},
	}
}

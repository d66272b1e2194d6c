package main

import (
	"github.com/odvcencio/wiggle/internal/patchio"
	"github.com/odvcencio/wiggle/pkg/token"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var words bool

	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Show a unified diff between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := patchio.ReadFile(args[0])
			if err != nil {
				return err
			}
			after, err := patchio.ReadFile(args[1])
			if err != nil {
				return err
			}

			mode := token.ByLine
			if words {
				mode = token.ByWord
			}
			return patchio.FormatDiff(cmd.OutOrStdout(), args[1], before, after, mode)
		},
	}

	cmd.Flags().BoolVar(&words, "words", false, "diff at word granularity instead of line granularity")
	return cmd
}

package main

import (
	"fmt"

	"github.com/odvcencio/wiggle/internal/patchio"
	"github.com/odvcencio/wiggle/pkg/emit"
	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/merge"
	"github.com/odvcencio/wiggle/pkg/token"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var words, ignoreAlready, showWiggles bool

	cmd := &cobra.Command{
		Use:   "merge <mine> <older> <theirs>",
		Short: "Three-way merge mine/older/theirs, writing conflict-marked output",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mine, err := patchio.ReadFile(args[0])
			if err != nil {
				return err
			}
			older, err := patchio.ReadFile(args[1])
			if err != nil {
				return err
			}
			theirs, err := patchio.ReadFile(args[2])
			if err != nil {
				return err
			}

			mode := token.ByLine
			if words {
				mode = token.ByWord
			}

			mf := token.Tokenize(mine, mode)  // "m": our working copy, the file being merged into
			bf := token.Tokenize(older, mode) // "b": the common base both diffs pivot on
			af := token.Tokenize(theirs, mode)

			opts := merge.Options{Words: words, IgnoreAlready: ignoreAlready, ShowWiggles: showWiggles}
			csl1 := lcs.Diff(mf, bf)
			csl2 := lcs.Diff(bf, af)

			res := merge.Merge(mf, bf, af, csl1, csl2, opts)
			merge.IsolateConflicts(&res, opts)

			conflicts, wiggles, ignored, err := emit.Print(cmd.OutOrStdout(), &res, opts)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			if conflicts > 0 {
				fmt.Fprintf(errOut, "%d conflict(s)\n", conflicts)
			}
			if showWiggles && wiggles > 0 {
				fmt.Fprintf(errOut, "%d wiggle(s)\n", wiggles)
			}
			if ignoreAlready && ignored > 0 {
				fmt.Fprintf(errOut, "%d already-applied hunk(s) ignored\n", ignored)
			}
			if conflicts > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("merge completed with %d conflict(s)", conflicts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&words, "words", false, "merge at word granularity instead of line granularity")
	cmd.Flags().BoolVar(&ignoreAlready, "ignore-already", false, "treat no-op conflicts (patch already applied) as clean")
	cmd.Flags().BoolVar(&showWiggles, "show-wiggles", false, "also isolate and annotate non-conflicting wiggles")

	return cmd
}

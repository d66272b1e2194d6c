package main

import (
	"fmt"

	"github.com/odvcencio/wiggle/internal/patchio"
	"github.com/odvcencio/wiggle/pkg/emit"
	"github.com/odvcencio/wiggle/pkg/extract"
	"github.com/odvcencio/wiggle/pkg/merge"
	"github.com/odvcencio/wiggle/pkg/token"
	"github.com/spf13/cobra"
)

// newWiggleCmd is the tool's namesake operation: apply a patch to a
// file whose content has drifted from what the patch expects, locating
// each hunk's best matching position before three-way merging it in.
func newWiggleCmd() *cobra.Command {
	var ignoreAlready, showWiggles bool

	cmd := &cobra.Command{
		Use:   "wiggle <file> <patch>",
		Short: "Apply a patch to file, relocating hunks that have drifted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := patchio.ReadFile(args[0])
			if err != nil {
				return err
			}
			patch, err := patchio.ReadFile(args[1])
			if err != nil {
				return err
			}

			ps, err := extract.SplitPatch(patch)
			if err != nil {
				return fmt.Errorf("wiggle: %w", err)
			}

			mf := token.Tokenize(target, token.ByLine)
			bf := token.Tokenize(ps.Before, token.ByLine)
			af := token.Tokenize(ps.After, token.ByLine)

			opts := merge.Options{IgnoreAlready: ignoreAlready, ShowWiggles: showWiggles}
			res := merge.MergePatch(mf, bf, af, ps.Chunks, opts)
			merge.IsolateConflicts(&res, opts)

			conflicts, wiggles, ignored, err := emit.Print(cmd.OutOrStdout(), &res, opts)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			if wiggles > 0 {
				fmt.Fprintf(errOut, "%d hunk(s) wiggled into place\n", wiggles)
			}
			if ignoreAlready && ignored > 0 {
				fmt.Fprintf(errOut, "%d hunk(s) already applied, ignored\n", ignored)
			}
			if conflicts > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d rejected hunk region(s)", conflicts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreAlready, "ignore-already", true, "treat hunks already present in the target as applied, not conflicts")
	cmd.Flags().BoolVar(&showWiggles, "show-wiggles", false, "annotate relocated hunks with a wiggled-result block")

	return cmd
}

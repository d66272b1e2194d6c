package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBrowseCmd is a stub: the interactive terminal browser (paging,
// colouring, editing of individual conflicts) is out of scope for this
// module (spec Non-goals) — the segment list and emitted text this
// module produces are exactly what such a browser would consume, but
// the browser itself is a front-end collaborator left unbuilt here.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "browse",
		Short:  "Interactive conflict browser (not implemented)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("browse: interactive terminal browser is not implemented; use 'wiggle merge' or 'wiggle wiggle' and inspect the conflict-marked output directly")
		},
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

func newTOCCmd(o *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "toc [document]",
		Short: "Print the table of contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.load(args)
			if err != nil {
				return err
			}
			defer log.Sync()

			tut, err := tutorial.Open(cmd.Context(), cfg, nav.NewMemoryLocation(""), log)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tut.TOC.Groups)
			}
			return writeTOC(cmd.OutOrStdout(), tut.TOC)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// writeTOC prints chapters flush left with their entries indented below.
func writeTOC(w io.Writer, toc *deck.TOC) error {
	for _, g := range toc.Groups {
		indent := ""
		if g.Chapter {
			if _, err := fmt.Fprintln(w, g.Heading); err != nil {
				return err
			}
			indent = "  "
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "%s%d. %s\n", indent, e.Index, e.Title); err != nil {
				return err
			}
		}
	}
	return nil
}

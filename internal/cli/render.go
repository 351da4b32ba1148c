package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

func newRenderCmd(o *rootOptions) *cobra.Command {
	var hash, out string
	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Print the document as displayed for a fragment",
		Long: `Prepares the deck, navigates to the section named by --hash and writes
the resulting HTML. The document defaults to the configured one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.load(args)
			if err != nil {
				return err
			}
			defer log.Sync()

			tut, err := tutorial.Open(cmd.Context(), cfg, nav.NewMemoryLocation(hash), log)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if _, err := tut.Doc.WriteTo(w); err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hash, "hash", "", "URL fragment to render, e.g. #3")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

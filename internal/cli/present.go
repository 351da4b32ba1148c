package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tui"
	"github.com/dgallion1/minitut/internal/tutorial"
)

func newPresentCmd(o *rootOptions) *cobra.Command {
	var hash string
	cmd := &cobra.Command{
		Use:   "present [document]",
		Short: "Present the deck in the terminal",
		Long: `Starts the terminal presenter. Left and right arrows navigate, t shows
the table of contents and q quits.`,
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
			// Anything below error level would draw over the screen.
			quiet := log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
			return tui.Run(tut, quiet)
		},
	}
	cmd.Flags().StringVar(&hash, "hash", "", "URL fragment to start at, e.g. #3")
	return cmd
}

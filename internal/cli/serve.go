package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/minitut/internal/api"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve [document]",
		Short: "Present the deck over HTTP",
		Long: `Serves the current section at / and accepts navigation over the JSON API
and the /ws websocket. Connected browsers follow every section change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.load(args)
			if err != nil {
				return err
			}
			defer log.Sync()
			if port != "" {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tut, err := tutorial.Open(ctx, cfg, nav.NewMemoryLocation(""), log, api.RemoteScript())
			if err != nil {
				return err
			}
			return api.ListenAndServe(ctx, tut, cfg, log)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	return cmd
}

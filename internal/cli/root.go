// Package cli is the minitut command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/config"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "minitut",
		Short: "Present an HTML slide deck",
		Long: `minitut turns an HTML document of <section> elements into a navigable
deck. It renders one section at a time, keeps the position in the URL
fragment and can present the deck in a terminal or over HTTP.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newRenderCmd(o),
		newTOCCmd(o),
		newPresentCmd(o),
		newServeCmd(o),
		newConfigCmd(o),
	)
	return cmd
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the configuration, lets the document argument override the
// configured one and builds the logger.
func (o *rootOptions) load(args []string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if len(args) > 0 {
		cfg.Document = args[0]
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

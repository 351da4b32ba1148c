package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/minitut/internal/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(o))
	return cmd
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [document]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(o.cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", o.cfgFile)
			}
			cfg := config.Default()
			if len(args) > 0 {
				cfg.Document = args[0]
			}
			if err := cfg.Save(o.cfgFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", o.cfgFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

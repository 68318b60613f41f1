package cmd

import (
	"protokollctl/pkg/config"
	"protokollctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage protokollctl configuration",
	Long:  "View or edit your local configuration settings (scrape defaults, filters, output file and theme).",
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		if show {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tui.PrintConfig(cfg)
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("show", false, "Print the effective configuration and exit")
}

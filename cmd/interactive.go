package cmd

import (
	"protokollctl/pkg/config"
	"protokollctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to scrape reports, review the collected results and export them interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log := newLogger(cfg)
		defer log.Sync()

		return tui.RunTUI(log)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

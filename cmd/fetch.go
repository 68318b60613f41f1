package cmd

import (
	"fmt"
	"os"
	"strconv"

	"protokollctl/pkg/config"
	"protokollctl/pkg/exporter"
	"protokollctl/pkg/scraper"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <pageId>",
	Short: "Fetch and print a single report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, err := strconv.Atoi(args[0])
		if err != nil || pageID < 0 {
			return fmt.Errorf("invalid pageId %q", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := newClient(cmd, cfg)

		var res scraper.FetchResult
		_ = spinner.New().
			Title(fmt.Sprintf("Fetching pageId %d...", pageID)).
			Action(func() {
				res = client.FetchPage(cmd.Context(), pageID)
			}).
			Run()

		if !res.Found {
			if res.Err != nil {
				return fmt.Errorf("pageId %d has no usable data (HTTP %d): %w", pageID, res.Status, res.Err)
			}
			return fmt.Errorf("pageId %d has no usable data (HTTP %d)", pageID, res.Status)
		}

		exporter.RenderRecord(res.Record, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().String("base-url", "", "Override the report site (for mirrors and testing)")
}

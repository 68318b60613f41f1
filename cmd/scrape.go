package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"protokollctl/pkg/config"
	"protokollctl/pkg/exporter"
	"protokollctl/pkg/scraper"
	"protokollctl/pkg/tui"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a range of report pages and export them to an .xlsx file",
	Long: `Scrape pageIds starting at --start until --max pages were tried or --miss-limit
pages in a row had no usable data. Matching reports are written to --output.
Flags that are not given fall back to the saved configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts, output, err := scrapeOptionsFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		log := newLogger(cfg)
		defer log.Sync()

		if active := opts.Filter.Active(); len(active) > 0 {
			fmt.Println("Active filters → " + strings.Join(active, " | "))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		session := scraper.NewSession()
		sum, runErr := tui.RunScrape(ctx, newClient(cmd, cfg), session, opts, log, os.Stdout, quiet)
		if runErr != nil && ctx.Err() == nil {
			return runErr
		}
		fmt.Println(tui.FormatSummary(sum))

		records := session.Records()
		if len(records) == 0 {
			fmt.Println("No matching pages found, nothing exported.")
			return runErr
		}

		if !quiet {
			exporter.RenderTable(records, os.Stdout)
		}

		if err := exporter.SaveXLSX(records, output); err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		fmt.Printf("Successfully exported %d records to %s\n", len(records), output)

		// An interrupted run still exports what it collected
		return runErr
	},
}

// scrapeOptionsFromFlags merges explicitly set flags over the saved defaults
func scrapeOptionsFromFlags(cmd *cobra.Command, cfg *config.AppConfig) (scraper.Options, string, error) {
	opts := cfg.ScrapeDefaults()
	output := cfg.Output()
	flags := cmd.Flags()

	if flags.Changed("start") {
		opts.StartID, _ = flags.GetInt("start")
	}
	if flags.Changed("max") {
		opts.MaxPages, _ = flags.GetInt("max")
	}
	if flags.Changed("miss-limit") {
		opts.MissLimit, _ = flags.GetInt("miss-limit")
	}
	if flags.Changed("delay-ms") {
		ms, _ := flags.GetInt("delay-ms")
		opts.Delay = time.Duration(ms) * time.Millisecond
	}
	if flags.Changed("uni") {
		opts.Filter.OrtUni, _ = flags.GetString("uni")
	}
	if flags.Changed("fach") {
		opts.Filter.Fach, _ = flags.GetString("fach")
	}
	if flags.Changed("output") {
		output, _ = flags.GetString("output")
	}
	if !strings.HasSuffix(output, ".xlsx") {
		output += ".xlsx"
	}

	return opts, output, opts.Validate()
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().Int("start", config.DefaultStartID, "First pageId to try")
	scrapeCmd.Flags().Int("max", config.DefaultMaxPages, "Maximum number of pageIds to try")
	scrapeCmd.Flags().Int("miss-limit", config.DefaultMissLimit, "Stop after this many consecutive missing pages")
	scrapeCmd.Flags().Int("delay-ms", config.DefaultDelayMS, "Delay between requests in milliseconds")
	scrapeCmd.Flags().String("uni", "", "Only keep reports whose Uni/Ort contains this text")
	scrapeCmd.Flags().String("fach", "", "Only keep reports whose Fach contains this text")
	scrapeCmd.Flags().StringP("output", "o", config.DefaultOutputFile, "Output .xlsx file path")
	scrapeCmd.Flags().BoolP("quiet", "q", false, "Show a spinner instead of per-page status lines")
	scrapeCmd.Flags().String("base-url", "", "Override the report site (for mirrors and testing)")
}

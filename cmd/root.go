package cmd

import (
	"fmt"
	"os"

	"protokollctl/pkg/config"
	"protokollctl/pkg/logger"
	"protokollctl/pkg/scraper"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "protokollctl",
	Short: "A CLI and TUI for Medi-Learn Facharzt exam reports",
	Long: `protokollctl walks the numbered Facharztprüfung reports published on
medi-learn.de, keeps the ones matching your filters and exports them to an .xlsx file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newLogger opens the file logger configured in cfg. A logger that cannot be
// opened is not fatal; the command then runs without logging.
func newLogger(cfg *config.AppConfig) logger.Logger {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return logger.NewNop()
	}
	return log
}

// newClient builds the report client, honoring a base URL from flags or config
func newClient(cmd *cobra.Command, cfg *config.AppConfig) *scraper.Client {
	base := cfg.BaseURL
	if f := cmd.Flags().Lookup("base-url"); f != nil && f.Changed {
		base = f.Value.String()
	}

	var opts []scraper.Option
	if base != "" {
		opts = append(opts, scraper.WithBaseURL(base))
	}
	return scraper.NewClient(opts...)
}

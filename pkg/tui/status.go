package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"protokollctl/pkg/logger"
	"protokollctl/pkg/scraper"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	savedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// FormatEvent renders the status line shown for one attempted page
func FormatEvent(ev scraper.Event) string {
	progress := fmt.Sprintf("[%d/%d]", ev.Attempt, ev.Total)

	switch ev.Outcome {
	case scraper.OutcomeSaved:
		return savedStyle.Render(fmt.Sprintf("%s ✅ Saved pageId=%d (HTTP %d)", progress, ev.PageID, ev.Status))
	case scraper.OutcomeDuplicate:
		return skippedStyle.Render(fmt.Sprintf("%s ↺ Skipped duplicate pageId=%d", progress, ev.PageID))
	case scraper.OutcomeFiltered:
		return skippedStyle.Render(fmt.Sprintf("%s ➖ Skipped pageId=%d (doesn't match filters)", progress, ev.PageID))
	default:
		return missStyle.Render(fmt.Sprintf("%s ❌ Missing/empty pageId=%d (HTTP %d) | Miss streak: %d",
			progress, ev.PageID, ev.Status, ev.MissStreak))
	}
}

// FormatSummary renders the closing lines of a run
func FormatSummary(sum scraper.Summary) string {
	msg := ""
	if sum.StoppedEarly {
		msg = errorStyle.Render(fmt.Sprintf("Stopped early after %d consecutive missing pages.", sum.MissStreak)) + "\n"
	}
	return msg + accentStyle.Render(fmt.Sprintf("Done. Saved %d matching pages (%d attempted, %d duplicates, %d filtered, %d missing).",
		sum.Saved, sum.Attempted, sum.Duplicates, sum.Filtered, sum.Missing))
}

// RunScrape runs one scrape into session. Unless quiet, a status line is printed to out for
// every page; in quiet mode a spinner is shown instead. Every run is logged under a fresh run_id.
func RunScrape(ctx context.Context, f scraper.Fetcher, session *scraper.Session, opts scraper.Options, log logger.Logger, out io.Writer, quiet bool) (scraper.Summary, error) {
	if log == nil {
		log = logger.NewNop()
	}
	opts.Logger = log.With(logger.String("run_id", uuid.NewString()))

	if out == nil {
		out = os.Stdout
	}

	if !quiet {
		return scraper.Run(ctx, f, session, opts, func(ev scraper.Event) {
			fmt.Fprintln(out, FormatEvent(ev))
		})
	}

	var sum scraper.Summary
	var err error
	_ = spinner.New().
		Title(fmt.Sprintf("Scraping pageIds %d-%d...", opts.StartID, opts.StartID+opts.MaxPages-1)).
		Action(func() {
			sum, err = scraper.Run(ctx, f, session, opts, nil)
		}).
		Run()

	return sum, err
}

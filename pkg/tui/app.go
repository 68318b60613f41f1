package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"protokollctl/pkg/config"
	"protokollctl/pkg/exporter"
	"protokollctl/pkg/logger"
	"protokollctl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const defaultAccent = "99"

var (
	// Fallbacks until GetTheme picks up the saved accent color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// GetTheme loads the user's saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := defaultAccent

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Manual print statements share the accent
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a huh.Theme using the provided lipgloss color string.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the interactive session. Results live in one in-memory session for as
// long as the menu is open; they are gone once the user quits.
func RunTUI(log logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []scraper.Option
	if cfg.BaseURL != "" {
		opts = append(opts, scraper.WithBaseURL(cfg.BaseURL))
	}
	client := scraper.NewClient(opts...)
	session := scraper.NewSession()

	fmt.Println(accentStyle.Render("Medi-Learn Facharztprüfungen Scraper"))

	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("What would you like to do? (%d results in session)", session.Len())).
					Options(
						huh.NewOption("🔎 Start Scraping", "scrape"),
						huh.NewOption("📋 View Results", "results"),
						huh.NewOption("⬇️  Export as Excel (.xlsx)", "export"),
						huh.NewOption("🧹 Clear Results", "clear"),
						huh.NewOption("⚙️  Settings", "config"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		switch action {
		case "scrape":
			err = runScrapeTUI(client, session, log)
		case "results":
			showResults(session, cfg)
		case "export":
			err = runExportTUI(session)
		case "clear":
			session.Clear()
			fmt.Println(accentStyle.Render("Cleared in-session results."))
		case "config":
			err = RunConfigTUI()
		case "quit":
			return nil
		}

		if err != nil {
			return err
		}

		// Settings may have changed the defaults
		if cfg, err = config.Load(); err != nil {
			return err
		}
	}
}

func runScrapeTUI(client *scraper.Client, session *scraper.Session, log logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	form := newScrapeSettings(cfg.ScrapeDefaults())
	if err := form.Form().WithTheme(GetTheme()).Run(); err != nil {
		return err
	}
	opts, err := form.Options()
	if err != nil {
		return err
	}

	if active := opts.Filter.Active(); len(active) > 0 {
		fmt.Println(infoStyle.Render("Active filters → " + strings.Join(active, " | ")))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := RunScrape(ctx, client, session, opts, log, os.Stdout, false)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		fmt.Println(errorStyle.Render("Scraping interrupted."))
	}

	fmt.Println(FormatSummary(sum))
	return nil
}

func showResults(session *scraper.Session, cfg *config.AppConfig) {
	if active := cfg.ScrapeDefaults().Filter.Active(); len(active) > 0 {
		fmt.Println(infoStyle.Render("Default filters → " + strings.Join(active, " | ")))
	}

	if session.Len() == 0 {
		fmt.Println("No data yet. Choose Start Scraping to begin.")
		return
	}

	exporter.RenderTable(session.Records(), os.Stdout)
	fmt.Println()
}

func runExportTUI(session *scraper.Session) error {
	if session.Len() == 0 {
		fmt.Println(errorStyle.Render("Nothing to export yet!"))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	outputFile := cfg.Output()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".xlsx") {
		outputFile += ".xlsx"
	}

	if err := exporter.SaveXLSX(session.Records(), outputFile); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nWrote %d records to %s", session.Len(), outputFile)))
	return nil
}

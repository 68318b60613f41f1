package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"protokollctl/pkg/scraper"

	"github.com/charmbracelet/huh"
)

// scrapeSettings binds the scrape options to text inputs
type scrapeSettings struct {
	startID   string
	maxPages  string
	missLimit string
	delayMS   string
	ortUni    string
	fach      string
}

func newScrapeSettings(opts scraper.Options) *scrapeSettings {
	return &scrapeSettings{
		startID:   strconv.Itoa(opts.StartID),
		maxPages:  strconv.Itoa(opts.MaxPages),
		missLimit: strconv.Itoa(opts.MissLimit),
		delayMS:   strconv.FormatInt(opts.Delay.Milliseconds(), 10),
		ortUni:    opts.Filter.OrtUni,
		fach:      opts.Filter.Fach,
	}
}

func intValidator(min int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("please enter a whole number")
		}
		if n < min {
			return fmt.Errorf("must be at least %d", min)
		}
		return nil
	}
}

// Form builds the two-page settings form: run limits, then the optional filters
func (s *scrapeSettings) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start pageId").
				Value(&s.startID).
				Validate(intValidator(0)),
			huh.NewInput().
				Title("Max pages to try").
				Value(&s.maxPages).
				Validate(intValidator(1)),
			huh.NewInput().
				Title("Stop after N consecutive misses").
				Description("Stop early if this many IDs in a row have no usable data.").
				Value(&s.missLimit).
				Validate(intValidator(1)),
			huh.NewInput().
				Title("Delay between requests (ms)").
				Value(&s.delayMS).
				Validate(intValidator(0)),
		).Title("Scrape Settings"),
		huh.NewGroup(
			huh.NewInput().
				Title("Uni/Ort contains …").
				Placeholder("e.g., Dresden").
				Value(&s.ortUni),
			huh.NewInput().
				Title("Fach contains …").
				Placeholder("e.g., Innere Medizin").
				Description("Only records matching all provided filters will be saved & exported.").
				Value(&s.fach),
		).Title("Filters (optional)"),
	)
}

// Options converts the entered values back into run options
func (s *scrapeSettings) Options() (scraper.Options, error) {
	var opts scraper.Options
	var err error

	if opts.StartID, err = strconv.Atoi(strings.TrimSpace(s.startID)); err != nil {
		return opts, fmt.Errorf("invalid start pageId: %w", err)
	}
	if opts.MaxPages, err = strconv.Atoi(strings.TrimSpace(s.maxPages)); err != nil {
		return opts, fmt.Errorf("invalid max pages: %w", err)
	}
	if opts.MissLimit, err = strconv.Atoi(strings.TrimSpace(s.missLimit)); err != nil {
		return opts, fmt.Errorf("invalid miss limit: %w", err)
	}
	delay, err := strconv.Atoi(strings.TrimSpace(s.delayMS))
	if err != nil {
		return opts, fmt.Errorf("invalid delay: %w", err)
	}
	opts.Delay = time.Duration(delay) * time.Millisecond
	opts.Filter = scraper.Filter{
		OrtUni: strings.TrimSpace(s.ortUni),
		Fach:   strings.TrimSpace(s.fach),
	}

	return opts, opts.Validate()
}

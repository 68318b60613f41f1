package scraper

import (
	"context"
	"errors"
	"time"

	"protokollctl/pkg/logger"
)

// Fetcher fetches a single report page. *Client implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, pageID int) FetchResult
}

// Options are the settings of one scrape run
type Options struct {
	StartID   int
	MaxPages  int
	MissLimit int
	Delay     time.Duration
	Filter    Filter
	Logger    logger.Logger
}

// Validate checks the options for values the run loop cannot work with
func (o Options) Validate() error {
	if o.StartID < 0 {
		return errors.New("start ID must not be negative")
	}
	if o.MaxPages < 1 {
		return errors.New("max pages must be at least 1")
	}
	if o.MissLimit < 1 {
		return errors.New("miss limit must be at least 1")
	}
	if o.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	return nil
}

// Outcome classifies what happened to one page ID
type Outcome int

const (
	// OutcomeSaved means the page matched the filters and was added to the session
	OutcomeSaved Outcome = iota
	// OutcomeDuplicate means the page was already in the session
	OutcomeDuplicate
	// OutcomeFiltered means the page was parsed but did not match the filters
	OutcomeFiltered
	// OutcomeMissing means the page could not be fetched or had no data
	OutcomeMissing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeMissing:
		return "missing"
	}
	return "unknown"
}

// Event is reported to the observer after every attempted page
type Event struct {
	PageID     int
	Attempt    int // 1-based
	Total      int
	Outcome    Outcome
	Status     int
	Err        error
	MissStreak int
}

// Summary describes a finished run
type Summary struct {
	Attempted    int
	Saved        int
	Duplicates   int
	Filtered     int
	Missing      int
	MissStreak   int
	StoppedEarly bool
}

// Run fetches page IDs StartID..StartID+MaxPages-1 in order and stores matching, unseen
// records in session. The run stops early once MissLimit pages in a row were misses.
// A failed page never aborts the run; only a cancelled ctx does, in which case the
// summary so far is returned together with ctx.Err().
func Run(ctx context.Context, f Fetcher, session *Session, opts Options, observe func(Event)) (Summary, error) {
	var sum Summary
	if err := opts.Validate(); err != nil {
		return sum, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	log.Info("Starting scrape run",
		logger.Int("start_id", opts.StartID),
		logger.Int("max_pages", opts.MaxPages),
		logger.Int("miss_limit", opts.MissLimit),
		logger.Duration("delay", opts.Delay),
		logger.Strings("filters", opts.Filter.Active()),
	)

	missStreak := 0

	for i := 0; i < opts.MaxPages; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn("Scrape run cancelled", logger.Int("attempted", sum.Attempted))
			return sum, err
		}

		pageID := opts.StartID + i
		res := f.FetchPage(ctx, pageID)
		sum.Attempted++

		ev := Event{
			PageID:  pageID,
			Attempt: i + 1,
			Total:   opts.MaxPages,
			Status:  res.Status,
			Err:     res.Err,
		}

		if res.Found {
			missStreak = 0
			switch {
			case !opts.Filter.Matches(res.Record):
				ev.Outcome = OutcomeFiltered
				sum.Filtered++
			case session.Add(res.Record):
				ev.Outcome = OutcomeSaved
				sum.Saved++
			default:
				ev.Outcome = OutcomeDuplicate
				sum.Duplicates++
			}
		} else {
			missStreak++
			ev.Outcome = OutcomeMissing
			sum.Missing++
		}
		ev.MissStreak = missStreak
		sum.MissStreak = missStreak

		fields := []logger.Field{
			logger.Int("page_id", pageID),
			logger.String("outcome", ev.Outcome.String()),
			logger.Int("status", res.Status),
			logger.Int("miss_streak", missStreak),
		}
		if res.Err != nil {
			fields = append(fields, logger.Error(res.Err))
		}
		log.Debug("Page processed", fields...)

		if observe != nil {
			observe(ev)
		}

		if missStreak >= opts.MissLimit {
			sum.StoppedEarly = true
			log.Info("Stopping after consecutive misses", logger.Int("miss_streak", missStreak))
			break
		}

		if opts.Delay > 0 && i < opts.MaxPages-1 {
			if err := sleep(ctx, opts.Delay); err != nil {
				log.Warn("Scrape run cancelled", logger.Int("attempted", sum.Attempted))
				return sum, err
			}
		}
	}

	log.Info("Scrape run finished",
		logger.Int("attempted", sum.Attempted),
		logger.Int("saved", sum.Saved),
		logger.Int("missing", sum.Missing),
		logger.Bool("stopped_early", sum.StoppedEarly),
	)
	return sum, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package scraper

import (
	"context"
	"log"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// MonitorOptions configures continuous monitoring of a query.
type MonitorOptions struct {
	Download DownloadOptions
	Filters  Filters

	// Interval between iterations.
	Interval time.Duration
	// Duration bounds the whole run; zero means until the context is
	// cancelled.
	Duration time.Duration
	// SleepSlice is how finely the inter-iteration sleep is divided so
	// cancellation and the duration limit are observed promptly. Defaults
	// to one second.
	SleepSlice time.Duration

	// OnIteration, if set, is called after each iteration with the (possibly
	// filtered) conversation and its saved checkpoint path.
	OnIteration func(conv *types.Conversation, savedPath string)
}

// MonitorReport summarizes a finished monitoring run.
type MonitorReport struct {
	Iterations   int
	UniqueTweets int
}

// Monitor repeatedly downloads the conversation for a query, reporting how
// many main tweet ids are new relative to all previous iterations. Every
// iteration writes its own checkpoint; the seen-id set only counts novelty,
// it never suppresses re-fetching or re-storage. The run ends when the
// optional duration elapses or the context is cancelled, both checked at
// iteration boundaries and at every sleep slice.
func (s *Scraper) Monitor(ctx context.Context, opts MonitorOptions) *MonitorReport {
	slice := opts.SleepSlice
	if slice <= 0 {
		slice = time.Second
	}

	report := &MonitorReport{}
	seen := make(map[string]bool)
	start := time.Now()

	expired := func() bool {
		return opts.Duration > 0 && time.Since(start) >= opts.Duration
	}

	for {
		if ctx.Err() != nil {
			log.Printf("[monitor] cancelled")
			break
		}
		if expired() {
			log.Printf("[monitor] duration of %s elapsed", opts.Duration)
			break
		}

		report.Iterations++
		log.Printf("[monitor] iteration %d - %s", report.Iterations, time.Now().Format("2006-01-02 15:04:05"))

		conv, err := s.DownloadConversation(ctx, opts.Download)
		if err != nil {
			log.Printf("[monitor] iteration %d download error: %v", report.Iterations, err)
		}

		if opts.Filters.Active() {
			conv = ApplyFilters(conv, opts.Filters)
		}

		newTweets := 0
		for _, item := range conv.Tweets {
			id := item.Tweet.ID
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			newTweets++
		}
		log.Printf("[monitor] %d new tweets this iteration, %d unique total", newTweets, len(seen))

		path, err := s.SaveJSON(conv)
		if err != nil {
			log.Printf("[monitor] save failed: %v", err)
		}
		if opts.OnIteration != nil {
			opts.OnIteration(conv, path)
		}

		// Sleep in slices so cancellation interrupts the wait promptly.
		for slept := time.Duration(0); slept < opts.Interval; slept += slice {
			if ctx.Err() != nil || expired() {
				break
			}
			d := slice
			if remaining := opts.Interval - slept; remaining < d {
				d = remaining
			}
			time.Sleep(d)
		}
	}

	report.UniqueTweets = len(seen)
	log.Printf("[monitor] finished: %d iterations, %d unique tweets", report.Iterations, report.UniqueTweets)

	return report
}

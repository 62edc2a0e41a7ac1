package scraper

import (
	"context"
	"log"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// StopReason records why a pagination loop terminated.
type StopReason string

const (
	// StopMaxReached: the accepted-tweet cap was hit.
	StopMaxReached StopReason = "max-reached"
	// StopSinceBoundary: a tweet older than the since bound was seen.
	StopSinceBoundary StopReason = "since-boundary"
	// StopNoMorePages: the endpoint returned no further data.
	StopNoMorePages StopReason = "no-more-pages"
	// StopError: a fetch failed; accumulated tweets are still returned.
	StopError StopReason = "error"
)

// SearchResult is the outcome of one bounded pagination run.
type SearchResult struct {
	Tweets     []types.Tweet
	Pages      int
	Stop       StopReason
	Err        error
	OldestSeen time.Time
	NewestSeen time.Time
}

// SearchTweets walks the search endpoint page by page, applying the date
// window and tweet cap, until a stop condition is met. onPage (optional)
// receives the accumulated accepted tweets after each page that added any,
// for incremental checkpointing.
//
// The since-boundary short circuit assumes pages arrive newest to oldest:
// once a tweet crosses below the since bound, nothing later in that page or
// in any subsequent page can be inside the window. An until-side miss only
// skips the tweet, because a single page can mix newer items depending on
// the search mode.
//
// Any fetch failure stops the loop immediately; whatever was accepted so far
// is returned, never discarded.
func (s *Scraper) SearchTweets(ctx context.Context, query, mode string, bounds types.Bounds, onPage func(accepted []types.Tweet)) *SearchResult {
	res := &SearchResult{}
	seen := make(map[string]bool)
	cursor := ""

	for {
		page, err := s.fetcher.SearchTweets(ctx, query, mode, cursor)
		if err != nil {
			log.Printf("[scraper] search stopped after %d pages: %v", res.Pages, err)
			res.Stop = StopError
			res.Err = err
			return res
		}

		if len(page.Tweets) == 0 {
			res.Stop = StopNoMorePages
			return res
		}

		res.Pages++
		accepted := 0
		crossedSince := false

		for _, t := range page.Tweets {
			ts := t.Time()
			if !ts.IsZero() {
				if res.OldestSeen.IsZero() || ts.Before(res.OldestSeen) {
					res.OldestSeen = ts
				}
				if res.NewestSeen.IsZero() || ts.After(res.NewestSeen) {
					res.NewestSeen = ts
				}
			}

			if bounds.HasSince() && ts.Before(bounds.Since) {
				crossedSince = true
				break
			}
			if bounds.HasUntil() && ts.After(bounds.Until) {
				continue
			}
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			res.Tweets = append(res.Tweets, t)
			accepted++
		}

		log.Printf("[scraper] page %d: %d of %d tweets accepted, %d total",
			res.Pages, accepted, len(page.Tweets), len(res.Tweets))

		if onPage != nil && accepted > 0 {
			onPage(res.Tweets)
		}

		if crossedSince {
			log.Printf("[scraper] reached since boundary %s", bounds.Since.Format("2006-01-02"))
			res.Stop = StopSinceBoundary
			return res
		}

		if bounds.MaxTweets > 0 && len(res.Tweets) >= bounds.MaxTweets {
			res.Tweets = res.Tweets[:bounds.MaxTweets]
			log.Printf("[scraper] reached limit of %d tweets", bounds.MaxTweets)
			res.Stop = StopMaxReached
			return res
		}

		if page.Cursor == "" {
			res.Stop = StopNoMorePages
			return res
		}
		cursor = page.Cursor

		if s.pageDelay > 0 {
			time.Sleep(s.pageDelay)
		}
	}
}

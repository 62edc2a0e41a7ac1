package scraper

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// DownloadOptions configures one bounded retrieval.
type DownloadOptions struct {
	Query          string
	Mode           string // "latest", "top", "photos", "videos"
	Hashtag        bool   // prepend # to the query when missing
	Bounds         types.Bounds
	IncludeReplies bool
}

// searchQuery returns the query as sent to the endpoint.
func (o DownloadOptions) searchQuery() string {
	if o.Hashtag && !strings.HasPrefix(o.Query, "#") {
		return "#" + o.Query
	}
	return o.Query
}

func (o DownloadOptions) searchType() string {
	if o.Hashtag {
		return types.SearchTypeHashtag
	}
	return types.SearchTypeText
}

// DownloadConversation retrieves the main tweets for a query and, when
// requested, fans out into each tweet's replies. Progress is checkpointed
// after every search page and per the checkpoint policy during the reply
// phase, always under the single name derived here from query and start
// time. The returned conversation is complete and marked completed; if the
// final checkpoint write failed, the conversation is still returned together
// with the error.
func (s *Scraper) DownloadConversation(ctx context.Context, opts DownloadOptions) (*types.Conversation, error) {
	name := checkpoint.Filename(opts.Query, time.Now())

	conv := &types.Conversation{
		Query:        opts.Query,
		SearchType:   opts.searchType(),
		Mode:         opts.Mode,
		DownloadedAt: time.Now().Format(time.RFC3339),
		Status:       types.StatusInProgress,
		Tweets:       []types.TweetWithReplies{},
	}

	res := s.SearchTweets(ctx, opts.searchQuery(), opts.Mode, opts.Bounds, func(accepted []types.Tweet) {
		snap := *conv
		snap.Tweets = make([]types.TweetWithReplies, 0, len(accepted))
		for _, t := range accepted {
			snap.Append(t, nil)
		}
		snap.RecomputeTotals()
		if _, err := s.checkpoints.Save(name, &snap); err != nil {
			log.Printf("[scraper] incremental save failed: %v", err)
		} else {
			log.Printf("[scraper] incremental save: %d tweets", len(accepted))
		}
	})
	if res.Err != nil {
		log.Printf("[scraper] search ended early (%s), keeping %d tweets", res.Stop, len(res.Tweets))
	}

	if opts.IncludeReplies {
		total := len(res.Tweets)
		for i, t := range res.Tweets {
			var replies []types.Tweet
			if t.ID != "" {
				log.Printf("[scraper] tweet %d/%d - fetching replies for %s", i+1, total, t.ID)
				replies = s.fetchReplies(ctx, t.ID)
				log.Printf("[scraper]   %d replies", len(replies))
			}
			conv.Append(t, replies)

			if s.policy(i+1, total) {
				conv.RecomputeTotals()
				if _, err := s.checkpoints.Save(name, conv); err != nil {
					log.Printf("[scraper] incremental save failed: %v", err)
				} else {
					log.Printf("[scraper] incremental save: %d/%d tweets processed", i+1, total)
				}
			}
		}
	} else {
		for _, t := range res.Tweets {
			conv.Append(t, nil)
		}
	}

	conv.RecomputeTotals()
	conv.Status = types.StatusCompleted
	conv.IncrementalSaved = true
	conv.SavedFilename = name

	path, err := s.checkpoints.Save(name, conv)
	if err != nil {
		return conv, err
	}
	log.Printf("[scraper] final save: %s (%d tweets, %d replies)", path, conv.TotalMainTweets, conv.TotalReplies)

	return conv, nil
}

// SaveJSON persists a conversation, returning the path of the written file.
// A conversation that is already completed and checkpointed returns its
// existing location without writing a duplicate.
func (s *Scraper) SaveJSON(conv *types.Conversation) (string, error) {
	if conv.Status == types.StatusCompleted && conv.IncrementalSaved && conv.SavedFilename != "" {
		path := s.checkpoints.Path(conv.SavedFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	name := checkpoint.Filename(conv.Query, time.Now())
	return s.checkpoints.Save(name, conv)
}

// Package scraper implements the conversation retrieval engine: bounded
// cursor pagination over the search endpoint, per-tweet reply fan-out,
// incremental checkpointing, post-hoc filtering, and continuous monitoring.
package scraper

import (
	"context"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/checkpoint"
	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Fetcher is the page-level API surface the engine drives. One call issues
// exactly one outbound request.
type Fetcher interface {
	SearchTweets(ctx context.Context, query, mode, cursor string) (*types.Page, error)
	TweetReplies(ctx context.Context, tweetID, cursor string) (*types.Page, error)
}

// CheckpointPolicy decides whether to write a checkpoint after the given
// number of main tweets have had their replies processed.
type CheckpointPolicy func(processed, total int) bool

// DefaultCheckpointPolicy checkpoints every 5 tweets and always after the
// last one.
func DefaultCheckpointPolicy(processed, total int) bool {
	return processed%5 == 0 || processed == total
}

// Scraper retrieves conversations through a Fetcher and checkpoints progress
// to a Store. Exactly one request is in flight at a time; the only
// suspension points are the configured inter-request delays.
type Scraper struct {
	fetcher     Fetcher
	checkpoints *checkpoint.Store

	pageDelay  time.Duration
	replyDelay time.Duration
	policy     CheckpointPolicy
}

// New creates a scraper with the default rate-limit pacing (1s between
// search pages, 500ms between reply pages) and checkpoint cadence.
func New(fetcher Fetcher, checkpoints *checkpoint.Store) *Scraper {
	return &Scraper{
		fetcher:     fetcher,
		checkpoints: checkpoints,
		pageDelay:   time.Second,
		replyDelay:  500 * time.Millisecond,
		policy:      DefaultCheckpointPolicy,
	}
}

// SetDelays overrides the inter-page delays. Zero disables pacing; the
// delays affect liveness only, never correctness.
func (s *Scraper) SetDelays(page, reply time.Duration) {
	s.pageDelay = page
	s.replyDelay = reply
}

// SetCheckpointPolicy replaces the reply-phase checkpoint cadence.
func (s *Scraper) SetCheckpointPolicy(p CheckpointPolicy) {
	if p != nil {
		s.policy = p
	}
}

// Checkpoints returns the checkpoint store backing this scraper.
func (s *Scraper) Checkpoints() *checkpoint.Store {
	return s.checkpoints
}

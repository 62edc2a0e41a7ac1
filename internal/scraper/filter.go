package scraper

import (
	"log"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Filters narrows a conversation's main tweets after retrieval. Zero values
// disable each criterion.
type Filters struct {
	MinLikes     int
	VerifiedOnly bool
}

// Active reports whether any filter criterion is set.
func (f Filters) Active() bool {
	return f.MinLikes > 0 || f.VerifiedOnly
}

// ApplyFilters returns a copy of the conversation keeping only the main
// tweets that satisfy the filters. Replies attached to a kept tweet are not
// filtered themselves. Totals are recomputed on the filtered set; the input
// conversation and any checkpoints on disk are left untouched.
func ApplyFilters(conv *types.Conversation, f Filters) *types.Conversation {
	out := *conv
	out.Tweets = make([]types.TweetWithReplies, 0, len(conv.Tweets))

	for _, item := range conv.Tweets {
		if f.MinLikes > 0 && item.Tweet.Likes < f.MinLikes {
			continue
		}
		if f.VerifiedOnly && !item.Tweet.Verified() {
			continue
		}
		out.Tweets = append(out.Tweets, item)
	}

	out.RecomputeTotals()
	log.Printf("[scraper] filters applied: %d tweets -> %d tweets", len(conv.Tweets), len(out.Tweets))

	return &out
}

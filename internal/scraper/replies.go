package scraper

import (
	"context"
	"log"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// fetchReplies paginates through the full reply set of one tweet. Failures
// are contained: the replies gathered so far are returned and the error is
// only logged, so one bad tweet never aborts the surrounding conversation
// download.
func (s *Scraper) fetchReplies(ctx context.Context, tweetID string) []types.Tweet {
	var replies []types.Tweet
	cursor := ""

	for {
		page, err := s.fetcher.TweetReplies(ctx, tweetID, cursor)
		if err != nil {
			log.Printf("[scraper] replies for tweet %s failed: %v (keeping %d fetched so far)",
				tweetID, err, len(replies))
			return replies
		}

		if len(page.Tweets) == 0 {
			return replies
		}
		replies = append(replies, page.Tweets...)

		if page.Cursor == "" {
			return replies
		}
		cursor = page.Cursor

		if s.replyDelay > 0 {
			time.Sleep(s.replyDelay)
		}
	}
}

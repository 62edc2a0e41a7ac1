// Package analysis computes summary statistics over a downloaded
// conversation.
package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Stats describes a conversation's shape and reply activity.
type Stats struct {
	TotalMainTweets   int
	TotalReplies      int
	TotalItems        int
	UniqueRepliers    int
	MostActiveReplier string
	MostActiveCount   int
	AvgReplyLength    float64
}

// Analyze derives statistics from a conversation's current tweet/reply
// pairs.
func Analyze(conv *types.Conversation) Stats {
	stats := Stats{TotalMainTweets: len(conv.Tweets)}

	replierCounts := make(map[string]int)
	totalLength := 0

	for _, item := range conv.Tweets {
		for _, r := range item.Replies {
			stats.TotalReplies++
			totalLength += utf8.RuneCountInString(r.Text)
			if r.Username != "" {
				replierCounts[r.Username]++
			}
		}
	}

	stats.TotalItems = stats.TotalMainTweets + stats.TotalReplies
	stats.UniqueRepliers = len(replierCounts)
	for username, count := range replierCounts {
		if count > stats.MostActiveCount {
			stats.MostActiveReplier = username
			stats.MostActiveCount = count
		}
	}
	if stats.TotalReplies > 0 {
		stats.AvgReplyLength = float64(totalLength) / float64(stats.TotalReplies)
	}

	return stats
}

// Summary renders the statistics as a printable report.
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Main tweets:        %d\n", s.TotalMainTweets)
	fmt.Fprintf(&b, "Replies:            %d\n", s.TotalReplies)
	fmt.Fprintf(&b, "Total items:        %d\n", s.TotalItems)
	fmt.Fprintf(&b, "Unique repliers:    %d\n", s.UniqueRepliers)
	fmt.Fprintf(&b, "Avg reply length:   %.1f chars\n", s.AvgReplyLength)
	if s.MostActiveReplier != "" {
		fmt.Fprintf(&b, "Most active replier: @%s (%d replies)\n", s.MostActiveReplier, s.MostActiveCount)
	}
	return b.String()
}

package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

func TestMonitorCountsNewTweetsAcrossIterations(t *testing.T) {
	f := &fakeFetcher{
		searchPages: []*types.Page{
			{Tweets: []types.Tweet{tweetAt("a", 100), tweetAt("b", 90)}},
			{Tweets: []types.Tweet{tweetAt("b", 90), tweetAt("c", 110)}},
		},
	}
	s := newTestScraper(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var perIteration []int
	report := s.Monitor(ctx, MonitorOptions{
		Download:   DownloadOptions{Query: "golang", Hashtag: true, Mode: "latest"},
		Interval:   time.Millisecond,
		SleepSlice: time.Millisecond,
		OnIteration: func(conv *types.Conversation, savedPath string) {
			perIteration = append(perIteration, conv.TotalMainTweets)
			if savedPath == "" {
				t.Error("iteration did not report a saved checkpoint path")
			}
			if len(perIteration) == 2 {
				cancel()
			}
		},
	})

	if report.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", report.Iterations)
	}
	if report.UniqueTweets != 3 {
		t.Errorf("unique tweets = %d, want 3: b repeats across iterations", report.UniqueTweets)
	}
	if len(perIteration) != 2 || perIteration[0] != 2 || perIteration[1] != 2 {
		t.Errorf("per-iteration tweet counts = %v, want [2 2]", perIteration)
	}
}

func TestMonitorFiltersBeforeCounting(t *testing.T) {
	f := &fakeFetcher{
		searchPages: []*types.Page{
			{Tweets: []types.Tweet{
				{ID: "popular", Timestamp: 100, Likes: 50},
				{ID: "quiet", Timestamp: 90, Likes: 1},
			}},
		},
	}
	s := newTestScraper(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report := s.Monitor(ctx, MonitorOptions{
		Download:   DownloadOptions{Query: "golang", Hashtag: true, Mode: "latest"},
		Filters:    Filters{MinLikes: 10},
		Interval:   time.Millisecond,
		SleepSlice: time.Millisecond,
		OnIteration: func(conv *types.Conversation, savedPath string) {
			if conv.TotalMainTweets != 1 {
				t.Errorf("filtered iteration has %d tweets, want 1", conv.TotalMainTweets)
			}
			cancel()
		},
	})

	if report.UniqueTweets != 1 {
		t.Errorf("unique tweets = %d, want 1: filtered-out tweets must not count", report.UniqueTweets)
	}
}

func TestMonitorRespectsCancelledContext(t *testing.T) {
	f := &fakeFetcher{
		searchPages: []*types.Page{
			{Tweets: []types.Tweet{tweetAt("a", 100)}},
		},
	}
	s := newTestScraper(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := s.Monitor(ctx, MonitorOptions{
		Download: DownloadOptions{Query: "golang", Hashtag: true, Mode: "latest"},
		Interval: time.Minute,
	})

	if report.Iterations != 0 {
		t.Errorf("iterations = %d, want 0 for a pre-cancelled context", report.Iterations)
	}
	if f.searchCalls != 0 {
		t.Errorf("made %d requests, want 0", f.searchCalls)
	}
}

func TestMonitorStopsAfterDuration(t *testing.T) {
	f := &fakeFetcher{
		searchPages: []*types.Page{
			{Tweets: []types.Tweet{tweetAt("a", 100)}},
		},
	}
	s := newTestScraper(t, f)

	report := s.Monitor(context.Background(), MonitorOptions{
		Download:   DownloadOptions{Query: "golang", Hashtag: true, Mode: "latest"},
		Interval:   time.Hour,
		Duration:   50 * time.Millisecond,
		SleepSlice: time.Millisecond,
	})

	if report.Iterations != 1 {
		t.Errorf("iterations = %d, want 1 before the duration elapses", report.Iterations)
	}
	if report.UniqueTweets != 1 {
		t.Errorf("unique tweets = %d, want 1", report.UniqueTweets)
	}
}

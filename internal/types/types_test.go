package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTweetTime(t *testing.T) {
	tw := Tweet{Timestamp: 1700000000}
	if !tw.Time().Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Time() = %v", tw.Time())
	}
	if !(&Tweet{}).Time().IsZero() {
		t.Error("zero timestamp should yield the zero time")
	}
}

func TestTweetVerified(t *testing.T) {
	cases := []struct {
		tweet Tweet
		want  bool
	}{
		{Tweet{}, false},
		{Tweet{IsVerified: true}, true},
		{Tweet{IsBlueVerified: true}, true},
		{Tweet{IsVerified: true, IsBlueVerified: true}, true},
	}
	for _, tc := range cases {
		if got := tc.tweet.Verified(); got != tc.want {
			t.Errorf("Verified(%+v) = %v, want %v", tc.tweet, got, tc.want)
		}
	}
}

func TestConversationAppendNormalizesNilReplies(t *testing.T) {
	var conv Conversation
	conv.Append(Tweet{ID: "a"}, nil)

	if conv.Tweets[0].Replies == nil {
		t.Fatal("nil replies should be normalized to an empty slice")
	}

	data, err := json.Marshal(conv.Tweets[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"replies":[]`) {
		t.Errorf("replies should serialize as an array, got %s", data)
	}
}

func TestRecomputeTotals(t *testing.T) {
	var conv Conversation
	conv.Append(Tweet{ID: "a"}, []Tweet{{ID: "a1"}, {ID: "a2"}})
	conv.Append(Tweet{ID: "b"}, nil)

	conv.RecomputeTotals()
	if conv.TotalMainTweets != 2 || conv.TotalReplies != 2 || conv.TotalItems != 4 {
		t.Errorf("totals = %d/%d/%d, want 2/2/4",
			conv.TotalMainTweets, conv.TotalReplies, conv.TotalItems)
	}

	// Recomputing twice must not drift.
	conv.RecomputeTotals()
	if conv.TotalItems != 4 {
		t.Errorf("totals drifted to %d on recompute", conv.TotalItems)
	}
}

func TestBoundsPresence(t *testing.T) {
	var b Bounds
	if b.HasSince() || b.HasUntil() {
		t.Error("zero bounds should be unbounded")
	}
	b.Since = time.Unix(100, 0)
	if !b.HasSince() {
		t.Error("since bound not detected")
	}
	b.Until = time.Unix(200, 0)
	if !b.HasUntil() {
		t.Error("until bound not detected")
	}
}

func TestDayBounds(t *testing.T) {
	since := time.Date(2026, 1, 10, 15, 30, 0, 0, time.Local)
	until := time.Date(2026, 1, 20, 8, 0, 0, 0, time.Local)

	b := DayBounds(since, until)

	wantSince := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	if !b.Since.Equal(wantSince) {
		t.Errorf("Since = %v, want start of day %v", b.Since, wantSince)
	}
	wantUntil := time.Date(2026, 1, 20, 23, 59, 59, 0, time.Local)
	if !b.Until.Equal(wantUntil) {
		t.Errorf("Until = %v, want end of day %v", b.Until, wantUntil)
	}
}

func TestDayBoundsPartial(t *testing.T) {
	b := DayBounds(time.Time{}, time.Time{})
	if b.HasSince() || b.HasUntil() {
		t.Error("zero inputs should leave the window open")
	}

	b = DayBounds(time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local), time.Time{})
	if !b.HasSince() || b.HasUntil() {
		t.Error("only since should be set")
	}
}

func TestConversationJSONShape(t *testing.T) {
	conv := Conversation{
		Query:      "#golang",
		SearchType: SearchTypeHashtag,
		Status:     StatusCompleted,
	}
	conv.Append(Tweet{ID: "a"}, nil)
	conv.RecomputeTotals()

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"query"`, `"search_type"`, `"status"`, `"total_main_tweets"`, `"total_items"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("document missing %s: %s", key, data)
		}
	}
	if strings.Contains(string(data), "incremental_saved") {
		t.Error("bookkeeping fields should be omitted until set")
	}
}

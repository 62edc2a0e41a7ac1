// Package types defines the data model shared by the retrieval engine,
// persistence, and export layers.
package types

import "time"

// Search lifecycle status values as written to checkpoint documents.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Search type values.
const (
	SearchTypeHashtag = "hashtag"
	SearchTypeText    = "text"
)

// Tweet represents a single retrieved tweet, either a main search result or a
// reply. Fields mirror the remote API's document; missing fields decode to
// their zero values.
type Tweet struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Username       string   `json:"username"`
	Name           string   `json:"name"`
	Timestamp      int64    `json:"timestamp"`
	TimeParsed     string   `json:"time_parsed,omitempty"`
	Likes          int      `json:"likes"`
	Retweets       int      `json:"retweets"`
	Replies        int      `json:"replies"`
	Views          int      `json:"views"`
	IsVerified     bool     `json:"is_verified"`
	IsBlueVerified bool     `json:"is_blue_verified"`
	PermanentURL   string   `json:"permanent_url,omitempty"`
	Hashtags       []string `json:"hashtags,omitempty"`
	Media          []string `json:"media,omitempty"`
	Lang           string   `json:"lang,omitempty"`
}

// Time returns the tweet's timestamp as a time.Time. Zero timestamps yield
// the zero time.
func (t *Tweet) Time() time.Time {
	if t.Timestamp == 0 {
		return time.Time{}
	}
	return time.Unix(t.Timestamp, 0)
}

// Verified reports whether the author carries either verification flag.
func (t *Tweet) Verified() bool {
	return t.IsVerified || t.IsBlueVerified
}

// Page is one page of results from the remote endpoint. An empty Cursor
// means there are no further pages.
type Page struct {
	Tweets []Tweet
	Cursor string
}

// TweetWithReplies pairs a main tweet with its downloaded replies.
type TweetWithReplies struct {
	Tweet   Tweet   `json:"tweet"`
	Replies []Tweet `json:"replies"`
}

// Conversation is the aggregate result of one retrieval: the main tweets for
// a query together with their replies and derived totals. Its JSON form is
// the checkpoint document written to disk.
type Conversation struct {
	Query           string             `json:"query"`
	SearchType      string             `json:"search_type"`
	Mode            string             `json:"mode"`
	DownloadedAt    string             `json:"downloaded_at"`
	Status          string             `json:"status"`
	TotalMainTweets int                `json:"total_main_tweets"`
	TotalReplies    int                `json:"total_replies"`
	TotalItems      int                `json:"total_items"`
	Tweets          []TweetWithReplies `json:"tweets"`

	// Bookkeeping for idempotent final saves.
	IncrementalSaved bool   `json:"incremental_saved,omitempty"`
	SavedFilename    string `json:"_saved_filename,omitempty"`
}

// Append adds a (tweet, replies) pair, normalizing nil reply slices so the
// document always serializes replies as an array.
func (c *Conversation) Append(tweet Tweet, replies []Tweet) {
	if replies == nil {
		replies = []Tweet{}
	}
	c.Tweets = append(c.Tweets, TweetWithReplies{Tweet: tweet, Replies: replies})
}

// RecomputeTotals derives the total counters from the current tweet/reply
// pairs. Totals are always recomputed from scratch, never adjusted
// incrementally.
func (c *Conversation) RecomputeTotals() {
	c.TotalMainTweets = len(c.Tweets)
	c.TotalReplies = 0
	for _, t := range c.Tweets {
		c.TotalReplies += len(t.Replies)
	}
	c.TotalItems = c.TotalMainTweets + c.TotalReplies
}

// Bounds constrains one retrieval: an optional date window and an optional
// cap on accepted main tweets. Zero values mean unbounded.
type Bounds struct {
	Since     time.Time
	Until     time.Time
	MaxTweets int
}

// HasSince reports whether a lower date bound is set.
func (b Bounds) HasSince() bool { return !b.Since.IsZero() }

// HasUntil reports whether an upper date bound is set.
func (b Bounds) HasUntil() bool { return !b.Until.IsZero() }

// DayBounds builds a date window from calendar days in the local timezone.
// since starts at 00:00:00 of its day; until extends to the last second of
// its day, so the named day is included.
func DayBounds(since, until time.Time) Bounds {
	var b Bounds
	if !since.IsZero() {
		y, m, d := since.Date()
		b.Since = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}
	if !until.IsZero() {
		y, m, d := until.Date()
		b.Until = time.Date(y, m, d, 23, 59, 59, 0, time.Local)
	}
	return b
}

// Package store keeps a SQLite archive of main tweets seen across retrieval
// runs. Monitor mode writes into it so long sessions leave a queryable
// record beyond the per-run checkpoint files.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// New creates a store with a SQLite backend at dbPath.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tweets (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		name TEXT,
		text TEXT,
		timestamp INTEGER,
		time_parsed TEXT,
		likes INTEGER,
		retweets INTEGER,
		replies INTEGER,
		views INTEGER,
		verified BOOLEAN,
		permanent_url TEXT,
		hashtags TEXT,
		query TEXT,
		first_seen_at DATETIME NOT NULL,
		last_seen_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tweets_timestamp ON tweets(timestamp);
	CREATE INDEX IF NOT EXISTS idx_tweets_query ON tweets(query);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveTweet inserts a tweet or, when it was already archived, refreshes its
// engagement counters and last-seen time.
func (s *Store) SaveTweet(t *types.Tweet, query string) error {
	hashtagsJSON, _ := json.Marshal(t.Hashtags)
	now := time.Now()

	_, err := s.db.Exec(`
		INSERT INTO tweets (id, username, name, text, timestamp, time_parsed,
			likes, retweets, replies, views, verified, permanent_url,
			hashtags, query, first_seen_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			likes = excluded.likes,
			retweets = excluded.retweets,
			replies = excluded.replies,
			views = excluded.views,
			last_seen_at = excluded.last_seen_at
	`, t.ID, t.Username, t.Name, t.Text, t.Timestamp, t.TimeParsed,
		t.Likes, t.Retweets, t.Replies, t.Views, t.Verified(), t.PermanentURL,
		string(hashtagsJSON), query, now, now)

	return err
}

// SaveConversation archives every main tweet of a conversation. Returns how
// many of them were not in the archive before.
func (s *Store) SaveConversation(conv *types.Conversation) (int, error) {
	added := 0
	for _, item := range conv.Tweets {
		if item.Tweet.ID == "" {
			continue
		}
		exists, err := s.TweetExists(item.Tweet.ID)
		if err != nil {
			return added, err
		}
		if err := s.SaveTweet(&item.Tweet, conv.Query); err != nil {
			return added, err
		}
		if !exists {
			added++
		}
	}
	return added, nil
}

// TweetExists checks if a tweet ID is already archived.
func (s *Store) TweetExists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM tweets WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// CountTweets returns the number of archived tweets.
func (s *Store) CountTweets() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tweets`).Scan(&count)
	return count, err
}

// RecentTweets returns the most recently seen tweets, newest first.
func (s *Store) RecentTweets(limit int) ([]types.Tweet, error) {
	rows, err := s.db.Query(`
		SELECT id, username, name, text, timestamp, time_parsed,
			likes, retweets, replies, views, verified, permanent_url, hashtags
		FROM tweets
		ORDER BY last_seen_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []types.Tweet
	for rows.Next() {
		var t types.Tweet
		var verified bool
		var hashtagsJSON string

		err := rows.Scan(
			&t.ID, &t.Username, &t.Name, &t.Text, &t.Timestamp, &t.TimeParsed,
			&t.Likes, &t.Retweets, &t.Replies, &t.Views, &verified,
			&t.PermanentURL, &hashtagsJSON,
		)
		if err != nil {
			return nil, err
		}

		t.IsVerified = verified
		json.Unmarshal([]byte(hashtagsJSON), &t.Hashtags)
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}

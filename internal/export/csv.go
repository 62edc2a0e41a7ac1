// Package export writes conversations to tabular CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// utf8BOM makes the files open cleanly in spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Filename derives a timestamped CSV filename from a query.
func Filename(query string, t time.Time) string {
	clean := strings.NewReplacer("#", "", " ", "_").Replace(query)
	return fmt.Sprintf("%s_%s.csv", clean, t.Format("20060102_150405"))
}

// CSV writes one row per main tweet with its engagement counters and the
// number of replies downloaded for it. Returns the path of the written file.
func CSV(conv *types.Conversation, dir, filename string) (string, error) {
	if len(conv.Tweets) == 0 {
		return "", fmt.Errorf("no tweets to export")
	}
	if filename == "" {
		filename = Filename(conv.Query, time.Now())
	}

	w, path, done, err := openWriter(dir, filename)
	if err != nil {
		return "", err
	}
	defer done()

	header := []string{
		"id", "date", "username", "name", "text",
		"likes", "retweets", "replies", "views", "verified",
		"url", "hashtags", "replies_downloaded",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, item := range conv.Tweets {
		t := item.Tweet
		row := []string{
			t.ID,
			t.TimeParsed,
			t.Username,
			t.Name,
			t.Text,
			strconv.Itoa(t.Likes),
			strconv.Itoa(t.Retweets),
			strconv.Itoa(t.Replies),
			strconv.Itoa(t.Views),
			strconv.FormatBool(t.Verified()),
			t.PermanentURL,
			strings.Join(t.Hashtags, ","),
			strconv.Itoa(len(item.Replies)),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return path, nil
}

// FlatCSV writes one row per (main tweet, reply) pair, and a single row with
// empty reply columns for tweets without replies.
func FlatCSV(conv *types.Conversation, dir, filename string) (string, error) {
	if len(conv.Tweets) == 0 {
		return "", fmt.Errorf("no tweets to export")
	}
	if filename == "" {
		filename = strings.TrimSuffix(Filename(conv.Query, time.Now()), ".csv") + "_flat.csv"
	}

	w, path, done, err := openWriter(dir, filename)
	if err != nil {
		return "", err
	}
	defer done()

	header := []string{
		"id", "date", "username", "name", "text",
		"likes", "retweets", "replies", "views", "verified",
		"url", "hashtags", "replies_downloaded",
		"reply_username", "reply_text", "reply_date",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, item := range conv.Tweets {
		t := item.Tweet
		base := []string{
			t.ID,
			t.TimeParsed,
			t.Username,
			t.Name,
			t.Text,
			strconv.Itoa(t.Likes),
			strconv.Itoa(t.Retweets),
			strconv.Itoa(t.Replies),
			strconv.Itoa(t.Views),
			strconv.FormatBool(t.Verified()),
			t.PermanentURL,
			strings.Join(t.Hashtags, ","),
			strconv.Itoa(len(item.Replies)),
		}

		if len(item.Replies) == 0 {
			if err := w.Write(append(base, "", "", "")); err != nil {
				return "", fmt.Errorf("failed to write csv row: %w", err)
			}
			continue
		}
		for _, r := range item.Replies {
			row := append(append([]string{}, base...), r.Username, r.Text, r.TimeParsed)
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return path, nil
}

func openWriter(dir, filename string) (*csv.Writer, string, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to create csv file: %w", err)
	}
	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, "", nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return csv.NewWriter(f), path, func() { _ = f.Close() }, nil
}

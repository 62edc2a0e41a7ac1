package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

func exportTestConversation() *types.Conversation {
	conv := &types.Conversation{Query: "#golang", SearchType: types.SearchTypeHashtag}
	conv.Append(types.Tweet{
		ID:           "1",
		TimeParsed:   "2026-01-15 09:30:45",
		Username:     "gopher",
		Name:         "The Gopher",
		Text:         "generics, finally",
		Likes:        42,
		Retweets:     7,
		Replies:      2,
		Views:        1000,
		IsVerified:   true,
		PermanentURL: "https://x.com/gopher/status/1",
		Hashtags:     []string{"golang", "generics"},
	}, []types.Tweet{
		{ID: "r1", Username: "alice", Text: "at last", TimeParsed: "2026-01-15 09:35:00"},
		{ID: "r2", Username: "bob", Text: "about time", TimeParsed: "2026-01-15 09:40:00"},
	})
	conv.Append(types.Tweet{ID: "2", Username: "quiet", Text: "no replies here"}, nil)
	conv.RecomputeTotals()
	return conv
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Error("file should start with a UTF-8 BOM")
	}
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	return rows
}

func TestCSVOneRowPerMainTweet(t *testing.T) {
	path, err := CSV(exportTestConversation(), t.TempDir(), "out.csv")
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 tweets", len(rows))
	}

	header := rows[0]
	if header[0] != "id" || header[len(header)-1] != "replies_downloaded" {
		t.Errorf("unexpected header: %v", header)
	}

	first := rows[1]
	if first[0] != "1" || first[2] != "gopher" || first[5] != "42" {
		t.Errorf("unexpected first row: %v", first)
	}
	if first[9] != "true" {
		t.Errorf("verified column = %q, want true", first[9])
	}
	if first[11] != "golang,generics" {
		t.Errorf("hashtags column = %q", first[11])
	}
	if first[12] != "2" {
		t.Errorf("replies_downloaded = %q, want 2", first[12])
	}
	if rows[2][12] != "0" {
		t.Errorf("replyless tweet replies_downloaded = %q, want 0", rows[2][12])
	}
}

func TestFlatCSVOneRowPerReply(t *testing.T) {
	path, err := FlatCSV(exportTestConversation(), t.TempDir(), "flat.csv")
	if err != nil {
		t.Fatalf("FlatCSV: %v", err)
	}

	rows := readRows(t, path)
	// Header, two reply rows for tweet 1, one empty-reply row for tweet 2.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	header := rows[0]
	if header[len(header)-3] != "reply_username" || header[len(header)-1] != "reply_date" {
		t.Errorf("unexpected header tail: %v", header[len(header)-3:])
	}

	if rows[1][0] != "1" || rows[1][13] != "alice" || rows[2][13] != "bob" {
		t.Errorf("unexpected reply rows: %v / %v", rows[1], rows[2])
	}
	last := rows[3]
	if last[0] != "2" || last[13] != "" || last[14] != "" || last[15] != "" {
		t.Errorf("replyless tweet should have empty reply columns, got %v", last)
	}
}

func TestCSVRejectsEmptyConversation(t *testing.T) {
	conv := &types.Conversation{Query: "#nothing"}
	if _, err := CSV(conv, t.TempDir(), "out.csv"); err == nil {
		t.Error("expected an error for an empty conversation")
	}
	if _, err := FlatCSV(conv, t.TempDir(), "out.csv"); err == nil {
		t.Error("expected an error for an empty conversation")
	}
}

func TestFilenameCleansQuery(t *testing.T) {
	ts := time.Date(2026, 1, 15, 9, 30, 45, 0, time.UTC)
	if got := Filename("#go gophers", ts); got != "go_gophers_20260115_093045.csv" {
		t.Errorf("Filename = %q", got)
	}
}

// Package checkpoint persists conversation snapshots as JSON documents.
// Each save writes a complete, self-consistent snapshot that supersedes any
// prior file under the same name, so a reader can always open the latest
// checkpoint safely.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/686f6c61/Twitter-Xcom-Scraping/internal/types"
)

// DefaultDir is where checkpoint documents are written unless configured
// otherwise.
const DefaultDir = "scraping"

// Store writes and reads checkpoint documents in a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path for a checkpoint name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes the conversation as an indented JSON document under name,
// replacing any previous snapshot of that name. The write goes through a
// temp file and rename so a crash never leaves a partial document behind.
func (s *Store) Save(name string, conv *types.Conversation) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create checkpoint dir: %w", err)
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation: %w", err)
	}

	path := s.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to finalize checkpoint: %w", err)
	}

	return path, nil
}

// Load reads a checkpoint document by name.
func (s *Store) Load(name string) (*types.Conversation, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var conv types.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}

	return &conv, nil
}

// Latest returns the name of the most recent checkpoint, judged by the
// timestamp embedded in the name. Names start with the cleaned query, so
// whole-name order would compare queries before dates; only the trailing
// timestamp decides recency.
func (s *Store) Latest() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no checkpoints in %s", s.dir)
		}
		return "", err
	}

	var latest, latestTS string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ts := nameTimestamp(entry.Name())
		if latest == "" || ts > latestTS || (ts == latestTS && entry.Name() > latest) {
			latest, latestTS = entry.Name(), ts
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no checkpoints in %s", s.dir)
	}
	return latest, nil
}

// nameTimestamp extracts the YYYYMMDD_HHMMSS suffix of a checkpoint name.
// Names without one sort before every timestamped name.
func nameTimestamp(name string) string {
	base := strings.TrimSuffix(name, ".json")
	if len(base) < 15 {
		return ""
	}
	ts := base[len(base)-15:]
	if _, err := time.Parse("20060102_150405", ts); err != nil {
		return ""
	}
	return ts
}

// Filename derives the checkpoint name for a retrieval from its query and
// start time. One retrieval always writes under exactly one name.
func Filename(query string, t time.Time) string {
	clean := strings.NewReplacer("#", "", " ", "_").Replace(query)
	return fmt.Sprintf("%s_%s.json", clean, t.Format("20060102_150405"))
}

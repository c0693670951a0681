package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/conorfennell/benkyou/internal/deck"
)

// FileStore keeps each deck's progress in <dir>/<deck>.json as a JSON
// array of records.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create progress directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(deckName string) string {
	return filepath.Join(fs.dir, deckName+".json")
}

// LoadProgress reads a deck's progress file. A missing file means no
// progress; elements that fail to decode are skipped.
func (fs *FileStore) LoadProgress(deckName string) ([]deck.Record, error) {
	data, err := os.ReadFile(fs.path(deckName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress file for deck %s: %w", deckName, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode progress file for deck %s: %w", deckName, err)
	}

	records := make([]deck.Record, 0, len(raw))
	for i, msg := range raw {
		var r deck.Record
		if err := json.Unmarshal(msg, &r); err != nil {
			slog.Warn("Skipping unreadable progress record", "deck", deckName, "index", i, "error", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// SaveProgress writes a deck's progress file, replacing it atomically.
func (fs *FileStore) SaveProgress(deckName string, records []deck.Record) error {
	if records == nil {
		records = []deck.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress for deck %s: %w", deckName, err)
	}

	tmp, err := os.CreateTemp(fs.dir, deckName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create progress file for deck %s: %w", deckName, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write progress file for deck %s: %w", deckName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write progress file for deck %s: %w", deckName, err)
	}
	if err := os.Rename(tmp.Name(), fs.path(deckName)); err != nil {
		return fmt.Errorf("failed to replace progress file for deck %s: %w", deckName, err)
	}
	return nil
}

// Close is a no-op; it lets FileStore stand in wherever a DB is closed.
func (fs *FileStore) Close() error {
	return nil
}

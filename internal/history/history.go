package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/followsync/pkg/models"
)

// maxRecords caps each history list; oldest entries are evicted first.
const maxRecords = 1000

// Store persists the history document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a history store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted history document. A missing file yields a fresh
// empty document.
func (s *Store) Load() (*models.HistoryDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &models.HistoryDocument{}, nil
		}
		return nil, err
	}

	var doc models.HistoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", s.path, err)
	}
	return &doc, nil
}

// Save writes the document, creating the data directory on demand. The write
// goes through a temp file so a crash never leaves a half-written document.
func (s *Store) Save(doc *models.HistoryDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Append records this run's realized actions, stamps last_run and truncates
// both lists to the newest maxRecords entries.
func Append(doc *models.HistoryDocument, followed, unfollowed []string, now time.Time) {
	ts := now.Format(time.RFC3339)

	for _, user := range followed {
		doc.Follows = append(doc.Follows, models.ActionRecord{User: user, Timestamp: ts})
	}
	for _, user := range unfollowed {
		doc.Unfollows = append(doc.Unfollows, models.ActionRecord{User: user, Timestamp: ts})
	}
	doc.LastRun = ts

	doc.Follows = tail(doc.Follows, maxRecords)
	doc.Unfollows = tail(doc.Unfollows, maxRecords)
}

func tail(records []models.ActionRecord, n int) []models.ActionRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// Package history keeps the ordered, deduplicated log of past submissions
// and persists it across sessions.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/model"
	"github.com/kubux/ai-image-studio/internal/platform"
)

// DefaultCapacity bounds the number of remembered entries.
const DefaultCapacity = 100

// Store is an append-at-head prompt log. Entries are most-recent-first; an
// entry identical to the current head is dropped, and the list is truncated
// to capacity. Every mutation persists the whole list; persistence failures
// are logged and never fatal.
type Store struct {
	mu       sync.Mutex
	entries  []model.PromptHistoryEntry
	path     string
	capacity int
}

// NewStore loads the history persisted at path, tolerating a missing or
// corrupt file by starting empty.
func NewStore(path string, capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	s := &Store{path: path, capacity: capacity}
	s.load()
	return s
}

// Record inserts the entry at the head unless it matches the current head
// field-wise. Returns true when the history changed.
func (s *Store) Record(entry model.PromptHistoryEntry) bool {
	if entry.Prompt == "" {
		return false
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	if len(s.entries) > 0 && s.entries[0].SameContent(entry) {
		s.mu.Unlock()
		return false
	}

	s.entries = append([]model.PromptHistoryEntry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	snapshot := make([]model.PromptHistoryEntry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	if err := s.persist(snapshot); err != nil {
		logrus.WithError(err).Warn("could not persist prompt history")
	}
	return true
}

// List returns the entries most-recent-first.
func (s *Store) List() []model.PromptHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PromptHistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save persists the current list explicitly, e.g. at shutdown.
func (s *Store) Save() error {
	s.mu.Lock()
	snapshot := make([]model.PromptHistoryEntry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	return s.persist(snapshot)
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("could not read prompt history")
		}
		return
	}

	var entries []model.PromptHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.WithError(err).Warn("prompt history corrupt, starting empty")
		return
	}

	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// persist writes the whole list atomically so a crash mid-write leaves the
// previous state intact.
func (s *Store) persist(entries []model.PromptHistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return platform.WriteFileAtomic(s.path, data)
}

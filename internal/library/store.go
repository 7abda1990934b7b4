package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the number of saved results kept on disk.
const DefaultCapacity = 10

// Entry is one saved generation result. Entries are immutable once
// saved.
type Entry struct {
	ID            string    `json:"id"`
	Prompt        string    `json:"prompt"`
	OriginalImage string    `json:"originalImage,omitempty"`
	ResultImage   string    `json:"resultImage"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Options struct {
	Path     string
	Capacity int
	Logger   *slog.Logger

	// WriteFile overrides the persistence write. Tests use it to
	// simulate quota failures.
	WriteFile func(name string, data []byte, perm os.FileMode) error
}

// Store is a bounded, newest-first collection of saved results backed
// by a single JSON file.
type Store struct {
	mu        sync.Mutex
	path      string
	capacity  int
	entries   []Entry
	logger    *slog.Logger
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewStore loads the library file at opts.Path, tolerating a missing
// or unreadable file by starting empty.
func NewStore(opts Options) *Store {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	writeFile := opts.WriteFile
	if writeFile == nil {
		writeFile = os.WriteFile
	}

	s := &Store{
		path:      opts.Path,
		capacity:  capacity,
		logger:    logger,
		writeFile: writeFile,
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("library file unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("library file corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	s.entries = entries
}

// Save prepends a new entry, evicting the oldest entries beyond
// capacity. If the persistence write fails, the store is cleared and
// the write retried with only the new entry.
func (s *Store) Save(promptText, originalImage, resultImage string) (Entry, error) {
	entry := Entry{
		ID:            uuid.NewString(),
		Prompt:        promptText,
		OriginalImage: originalImage,
		ResultImage:   resultImage,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Entry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}

	if err := s.persist(next); err != nil {
		s.logger.Warn("library write failed, clearing and retrying with newest only", "error", err)
		next = []Entry{entry}
		if err := s.persist(next); err != nil {
			s.entries = next
			return entry, fmt.Errorf("write library: %w", err)
		}
	}

	s.entries = next
	return entry, nil
}

// List returns a copy of all entries, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Delete removes one entry by ID. Returns false when no entry matched.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)

	if err := s.persist(next); err != nil {
		return false, fmt.Errorf("write library: %w", err)
	}
	s.entries = next
	return true, nil
}

// Clear drops every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(nil); err != nil {
		return fmt.Errorf("write library: %w", err)
	}
	s.entries = nil
	return nil
}

func (s *Store) persist(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.writeFile(s.path, data, 0o644)
}

package session

import (
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"carcrafter/internal/builder"
)

// Session is one client's builder state plus a weighted-1 semaphore
// enforcing a single in-flight generation per session.
type Session struct {
	ID           string
	Builder      *builder.Builder
	InFlight     *semaphore.Weighted
	LastActivity time.Time
}

type Options struct {
	// NewBuilder constructs the builder for a fresh session.
	NewBuilder func() *builder.Builder
}

type Store struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	newBuilder func() *builder.Builder
}

func NewStore(opts Options) *Store {
	return &Store{
		sessions:   make(map[string]*Session),
		newBuilder: opts.NewBuilder,
	}
}

// Get returns the session for id, creating it on first use.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.LastActivity = time.Now()
		return sess
	}

	sess := &Session{
		ID:           id,
		Builder:      s.newBuilder(),
		InFlight:     semaphore.NewWeighted(1),
		LastActivity: time.Now(),
	}
	s.sessions[id] = sess
	return sess
}

// Reset drops a session's builder state without removing the session.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.Builder.Reset()
		sess.LastActivity = time.Now()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

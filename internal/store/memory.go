package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cardsearch/internal/search"
	"cardsearch/internal/widget"

	"github.com/rohanthewiz/logger"
)

// Session is the widget state of one browser
type Session struct {
	ID         string
	Notifier   *widget.Notifier
	Display    *widget.Display
	Controller *search.Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Touch marks the session as used
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionFactory builds the widget state for a new session id
type SessionFactory func(id string) *Session

// MemoryStore holds all sessions in memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  SessionFactory
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(factory SessionFactory) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		factory:  factory,
		now:      time.Now,
	}
}

// GetOrCreate returns the session for id, creating it on first use
func (s *MemoryStore) GetOrCreate(id string) *Session {
	now := s.now()

	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()
	if exists {
		sess.Touch(now)
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it meanwhile
	if sess, exists = s.sessions[id]; exists {
		sess.Touch(now)
		return sess
	}

	sess = s.factory(id)
	sess.ID = id
	sess.CreatedAt = now
	sess.Touch(now)
	s.sessions[id] = sess
	return sess
}

// GetSession retrieves a session by id
func (s *MemoryStore) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sess, nil
}

// DeleteSession drops a session
func (s *MemoryStore) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of live sessions
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns their ids
func (s *MemoryStore) Sweep(ttl time.Duration) []string {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
// onEvict, if set, is called for every removed session id.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval, ttl time.Duration, onEvict func(id string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.Sweep(ttl)
			if len(evicted) == 0 {
				continue
			}
			logger.Debug("Swept idle sessions", "count", fmt.Sprint(len(evicted)))
			if onEvict != nil {
				for _, id := range evicted {
					onEvict(id)
				}
			}
		}
	}
}

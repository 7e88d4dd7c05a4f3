package web

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	ErrSessionNotFound = errors.New("web: game not found")
	ErrTooManySessions = errors.New("web: too many active games")
)

// Session is one game in progress. The engine is not safe for concurrent
// use, so every access goes through mu.
type Session struct {
	ID        string
	Preset    registry.Preset
	Player    string
	CreatedAt time.Time

	mu           sync.Mutex
	engine       *game2048.Engine
	recorded     bool
	lastAccessed time.Time
	finishedAt   time.Time
	now          func() time.Time
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() game2048.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// touch records an access.
func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessed = s.now()
}

// expired reports whether the session should be evicted at now.
func (s *Session) expired(now time.Time, maxAge, finishedAge time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finishedAt.IsZero() && finishedAge > 0 && now.Sub(s.finishedAt) >= finishedAge {
		return true
	}
	return maxAge > 0 && now.Sub(s.lastAccessed) >= maxAge
}

// Move applies a move. finished is true exactly once, on the first call
// that observes the game over, so the caller can record the result.
func (s *Session) Move(dir game2048.Direction) (snap game2048.Snapshot, finished bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccessed = s.now()
	if err := s.engine.ApplyMove(dir); err != nil {
		return s.engine.Snapshot(), false, err
	}
	if s.engine.IsGameOver() && !s.recorded {
		s.recorded = true
		s.finishedAt = s.lastAccessed
		finished = true
	}
	return s.engine.Snapshot(), finished, nil
}

// SessionStore keeps active games in memory, keyed by UUID.
type SessionStore struct {
	sessions map[string]*Session
	limit    int
	now      func() time.Time
	mu       sync.RWMutex
}

// NewSessionStore creates a store holding at most limit games.
// A limit of 0 means unbounded.
func NewSessionStore(limit int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		limit:    limit,
		now:      time.Now,
	}
}

// Create starts a new game for the preset. A seed of 0 is time based.
func (st *SessionStore) Create(preset registry.Preset, seed int64, player string) (*Session, error) {
	cfg := preset.Config
	engine, err := game2048.New(&cfg, game2048.NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("web: cannot create game: %w", err)
	}

	created := st.now()
	session := &Session{
		ID:           uuid.NewString(),
		Preset:       preset,
		Player:       player,
		CreatedAt:    created,
		engine:       engine,
		lastAccessed: created,
		now:          st.now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.limit > 0 && len(st.sessions) >= st.limit {
		return nil, ErrTooManySessions
	}
	st.sessions[session.ID] = session

	return session, nil
}

// Get retrieves a session by ID and marks it as accessed.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of active sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CleanupExpired removes games not accessed within maxAge and finished
// games older than finishedAge. A zero duration disables that rule.
// It returns the number of games removed.
func (st *SessionStore) CleanupExpired(maxAge, finishedAge time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, session := range st.sessions {
		if session.expired(now, maxAge, finishedAge) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

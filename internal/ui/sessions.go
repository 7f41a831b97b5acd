package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"SchoolMeal/internal/controller"
	"SchoolMeal/internal/view"
)

const (
	// DefaultSessionTTL is how long an idle page session is kept
	DefaultSessionTTL = 30 * time.Minute

	// SweepInterval is how often idle sessions are looked for
	SweepInterval = time.Minute
)

// ControllerFactory builds the controller for a new page. ctx ends when the
// session is closed.
type ControllerFactory func(ctx context.Context, v view.View) *controller.Controller

// Session is one open page: its view and the controller driving it.
type Session struct {
	ID         string
	Page       *view.Page
	Controller *controller.Controller
	CreatedAt  time.Time

	cancel   context.CancelFunc
	lastSeen time.Time
}

// SessionStore keeps page sessions in memory and drops the idle ones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  ControllerFactory
	now      func() time.Time
	log      *slog.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewSessionStore(ttl time.Duration, factory ControllerFactory, logger *slog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		log:      logger.With("component", "sessions"),
		stopCh:   make(chan struct{}),
	}
}

// Create opens a session with a fresh page. The caller is expected to run
// the controller's Ready.
func (s *SessionStore) Create() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	page := view.NewPage()
	now := s.now()
	session := &Session{
		ID:         uuid.New().String(),
		Page:       page,
		Controller: s.factory(ctx, page),
		CreatedAt:  now,
		cancel:     cancel,
		lastSeen:   now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Debug("session opened", "session", session.ID)
	return session
}

// Get returns the session and marks it as recently used
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		session.lastSeen = s.now()
	}
	return session, ok
}

// Delete closes and forgets a session. It reports whether it existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		s.close(session)
	}
	return ok
}

func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes every session idle for longer than the TTL.
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []*Session
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		s.close(session)
	}
	if len(expired) > 0 {
		s.log.Info("expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Start begins sweeping idle sessions in the background
func (s *SessionStore) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Stop ends the sweeper and closes all remaining sessions
func (s *SessionStore) Stop() {
	close(s.stopCh)
	s.wg.Wait()

	s.mu.Lock()
	remaining := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range remaining {
		s.close(session)
	}
}

func (s *SessionStore) close(session *Session) {
	session.Controller.Close()
	session.cancel()
	s.log.Debug("session closed", "session", session.ID)
}

package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"nailpos/internal/history"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrSessionNotFound covers unknown, expired, closed and foreign-tenant sessions.
var ErrSessionNotFound = errors.New("ledger session not found")

// Session is one console screen browsing the ledger: a live subscription
// feeding a history loader.
type Session struct {
	ID       string
	TenantID string

	loader *history.Loader[model.Sale]
	sub    *Subscription

	mu        sync.Mutex
	lastUsed  time.Time
	listeners map[chan struct{}]struct{}
	closed    bool
}

// View is a point-in-time copy of a session.
type View struct {
	SessionID string
	State     history.State
	Cursor    history.Cursor
	Frozen    bool
	LiveCount int
	Records   []model.Sale
}

func (s *Session) View() View {
	cur, frozen := s.loader.Cursor()
	return View{
		SessionID: s.ID,
		State:     s.loader.State(),
		Cursor:    cur,
		Frozen:    frozen,
		LiveCount: len(s.loader.Live()),
		Records:   s.loader.View(),
	}
}

// Updates returns a channel signalled whenever the view changes, and a
// function to stop listening. Signals coalesce.
func (s *Session) Updates() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.listeners[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			if _, ok := s.listeners[ch]; ok {
				delete(s.listeners, ch)
				close(ch)
			}
			s.mu.Unlock()
		})
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listeners) > 0 {
		return 0
	}
	return now.Sub(s.lastUsed)
}

func (s *Session) close() {
	s.sub.Close()
	s.mu.Lock()
	s.closed = true
	for ch := range s.listeners {
		close(ch)
	}
	s.listeners = map[chan struct{}]struct{}{}
	s.mu.Unlock()
}

// Sessions owns every open ledger session.
type Sessions struct {
	feed     *Feed
	pageSize int
	ttl      time.Duration
	now      func() time.Time

	mu   sync.Mutex
	byID map[string]*Session
}

func NewSessions(feed *Feed, pageSize int, ttl time.Duration) *Sessions {
	if pageSize <= 0 {
		pageSize = history.DefaultPageSize
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Sessions{feed: feed, pageSize: pageSize, ttl: ttl, now: time.Now, byID: map[string]*Session{}}
}

// Open starts a session for tenantID. The live window and the history pages
// share the configured page size.
func (m *Sessions) Open(ctx context.Context, tenantID string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		loader:    history.NewLoader(m.feed.Pager(tenantID), repository.SaleCursor, m.pageSize),
		lastUsed:  m.now(),
		listeners: map[chan struct{}]struct{}{},
	}
	sub, err := m.feed.Subscribe(context.WithoutCancel(ctx), tenantID, m.pageSize, func(rows []model.Sale) {
		sess.loader.OnSnapshot(rows)
		sess.notify()
	})
	if err != nil {
		return nil, err
	}
	sess.sub = sub

	m.mu.Lock()
	m.byID[sess.ID] = sess
	m.mu.Unlock()
	log.Debug().Str("tenant", tenantID).Str("session", sess.ID).Msg("ledger: session opened")
	return sess, nil
}

func (m *Sessions) Get(tenantID, id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.byID[id]
	m.mu.Unlock()
	if !ok || sess.TenantID != tenantID {
		return nil, ErrSessionNotFound
	}
	sess.touch(m.now())
	return sess, nil
}

// LoadMore extends the session's history tail by one page. A failed fetch is
// logged and returned; the session stays retryable.
func (m *Sessions) LoadMore(ctx context.Context, tenantID, id string) (*Session, int, error) {
	sess, err := m.Get(tenantID, id)
	if err != nil {
		return nil, 0, err
	}
	n, err := sess.loader.LoadMore(ctx)
	if err != nil {
		log.Warn().Err(err).Str("tenant", tenantID).Str("session", id).Msg("ledger: history page fetch failed")
		return sess, 0, err
	}
	if n > 0 || sess.loader.State() == history.Exhausted {
		sess.notify()
	}
	return sess, n, nil
}

func (m *Sessions) Close(tenantID, id string) error {
	m.mu.Lock()
	sess, ok := m.byID[id]
	if !ok || sess.TenantID != tenantID {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(m.byID, id)
	m.mu.Unlock()
	sess.close()
	return nil
}

// Sweep closes sessions idle for longer than the TTL and returns how many.
// Sessions with a connected stream never expire.
func (m *Sessions) Sweep() int {
	now := m.now()
	var expired []*Session
	m.mu.Lock()
	for id, sess := range m.byID {
		if sess.idleSince(now) > m.ttl {
			expired = append(expired, sess)
			delete(m.byID, id)
		}
	}
	m.mu.Unlock()
	for _, sess := range expired {
		sess.close()
	}
	return len(expired)
}

func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// Run sweeps expired sessions until ctx is done, then closes the rest.
func (m *Sessions) Run(ctx context.Context) {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.CloseAll()
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Info().Int("expired", n).Msg("ledger: idle sessions closed")
			}
		}
	}
}

func (m *Sessions) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.byID))
	for _, sess := range m.byID {
		all = append(all, sess)
	}
	m.byID = map[string]*Session{}
	m.mu.Unlock()
	for _, sess := range all {
		sess.close()
	}
}

package http

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// SessionCookie carries the session id.
const SessionCookie = "ragdemo_session"

// DefaultSessionTTL drops sessions idle for longer than this.
const DefaultSessionTTL = 30 * time.Minute

// DefaultMaxSessions bounds the live sessions. The least recently seen one
// is evicted to make room.
const DefaultMaxSessions = 1000

// session owns one query panel and one slideshow.
// mu guards the component pointers and is never held across a resolution.
// submitMu queues the session's query submissions.
type session struct {
	id       string
	mu       sync.Mutex
	submitMu sync.Mutex
	view     *pageView
	panel    *usecases.QueryPanel
	slides   *usecases.Slideshow
	lastSeen time.Time
}

// sessionManager maps cookie ids to sessions.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	resolver ports.QueryResolver
	store    ports.CatalogStore
	initial  int
	ttl      time.Duration
	limit    int
	now      func() time.Time
}

func newSessionManager(resolver ports.QueryResolver, store ports.CatalogStore, initialSlide int, ttl time.Duration) *sessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionManager{
		sessions: make(map[string]*session),
		resolver: resolver,
		store:    store,
		initial:  initialSlide,
		ttl:      ttl,
		limit:    DefaultMaxSessions,
		now:      time.Now,
	}
}

// get returns the session for id, creating one when id is unknown.
// created reports whether a new cookie must be set.
func (m *sessionManager) get(id string) (sess *session, created bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		if sess, ok := m.sessions[id]; ok {
			sess.lastSeen = now
			return sess, false, nil
		}
	}

	m.prune(now)
	if m.limit > 0 && len(m.sessions) >= m.limit {
		m.evictOldest()
	}
	sess, err = m.newSession()
	if err != nil {
		return nil, false, err
	}
	sess.lastSeen = now
	m.sessions[sess.id] = sess
	return sess, true, nil
}

func (m *sessionManager) newSession() (*session, error) {
	catalog := m.store.Snapshot()
	view := &pageView{}
	slides, err := usecases.NewSlideshow(len(catalog.Slides), m.initial, view)
	if err != nil {
		return nil, err
	}
	return &session{
		id:     uuid.NewString(),
		view:   view,
		panel:  usecases.NewQueryPanel(m.resolver, view, view, catalog.SampleQueries),
		slides: slides,
	}, nil
}

// prune drops idle sessions. Caller holds m.mu.
func (m *sessionManager) prune(now time.Time) {
	for id, sess := range m.sessions {
		if now.Sub(sess.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// evictOldest drops the least recently seen session. Caller holds m.mu.
func (m *sessionManager) evictOldest() {
	var oldest *session
	for _, sess := range m.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.id)
	}
}

func (m *sessionManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// syncContent rebuilds the session components after a content reload changed
// the sample queries or slide count. Caller holds sess.mu.
func (m *sessionManager) syncContent(sess *session) error {
	catalog := m.store.Snapshot()
	if !slices.Equal(sess.panel.Samples(), catalog.SampleQueries) {
		input := sess.panel.Input()
		sess.panel = usecases.NewQueryPanel(m.resolver, sess.view, sess.view, catalog.SampleQueries)
		sess.panel.SetInput(input)
	}
	if sess.slides.Total() != len(catalog.Slides) {
		slides, err := usecases.NewSlideshow(len(catalog.Slides), m.initial, sess.view)
		if err != nil {
			return err
		}
		sess.slides = slides
	}
	return nil
}

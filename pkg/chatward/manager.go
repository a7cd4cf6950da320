package chatward

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/chatward/pkg/chatward/observability"
	"github.com/randalmurphal/chatward/pkg/chatward/registry"
)

// Manager routes messages to per-chat sessions. Sessions are created
// lazily from the store on first message and evicted after sitting
// idle longer than the session TTL.
type Manager struct {
	cfg      managerConfig
	sessions *registry.Registry[int64, *Session]
	botName  string
	closed   atomic.Bool
}

// New creates a Manager for the given bot username.
func New(botUsername string, opts ...Option) *Manager {
	cfg := defaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{
		cfg:      cfg,
		sessions: registry.New[int64, *Session](),
		botName:  botUsername,
	}
}

// HandleMessage handles one incoming message for a chat, creating or
// loading the chat's session as needed.
func (m *Manager) HandleMessage(ctx context.Context, chatID int64, msg *Message, fromAdmin bool) ([]Update, error) {
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}
	if msg == nil {
		return nil, ErrNilMessage
	}

	updateID := uuid.NewString()
	logger := observability.EnrichLogger(m.cfg.logger, chatID, updateID)

	ctx, span := m.cfg.spans.StartMessageSpan(ctx, chatID, updateID)
	start := time.Now()

	session, err := m.session(chatID)
	if err != nil {
		m.cfg.spans.EndSpanWithError(span, err)
		m.cfg.metrics.RecordMessage(ctx, time.Since(start), err)
		observability.LogStoreError(logger, chatID, "load", err)
		return nil, err
	}

	updates, err := session.HandleMessage(ctx, msg, fromAdmin)
	m.cfg.spans.EndSpanWithError(span, err)
	m.cfg.metrics.RecordMessage(ctx, time.Since(start), err)
	if err == nil {
		observability.LogMessageHandled(logger, chatID, len(updates), float64(time.Since(start).Microseconds())/1000)
	}
	return updates, err
}

// session returns the live session for chatID, creating it from the
// store when absent.
func (m *Manager) session(chatID int64) (*Session, error) {
	return m.sessions.GetOrCreate(chatID, func() (*Session, error) {
		s, err := NewSession(m.cfg.store, chatID, m.botName)
		if err != nil {
			return nil, err
		}
		s.logger = m.cfg.logger
		s.spans = m.cfg.spans
		s.metrics = m.cfg.metrics
		return s, nil
	})
}

// Sessions returns the number of live sessions.
func (m *Manager) Sessions() int {
	return m.sessions.Len()
}

// EvictIdle removes sessions idle longer than the session TTL and
// returns the evicted chat IDs. Chat state stays in the store; a new
// message re-creates the session from it.
func (m *Manager) EvictIdle() []int64 {
	evicted := m.sessions.RemoveIf(func(_ int64, s *Session) bool {
		return s.IsIdle(m.cfg.sessionTTL)
	})
	for _, chatID := range evicted {
		observability.LogSessionEvicted(m.cfg.logger, chatID)
	}
	return evicted
}

// Close shuts the manager down. Further HandleMessage calls fail with
// ErrManagerClosed. The store is closed only when the manager owns it
// (the default in-memory store); stores provided via WithStore remain
// open.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.sessions.RemoveIf(func(int64, *Session) bool { return true })
	if m.cfg.ownedStore {
		return m.cfg.store.Close()
	}
	return nil
}

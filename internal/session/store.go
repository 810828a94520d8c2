package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

// Store keeps chat sessions in an expiring in-memory cache. Each browsing
// session owns exactly one entry; entries are never shared and never
// persisted. Expiry stands in for "session end".
type Store struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

type sessionEntry struct {
	mu      sync.Mutex
	session entity.ChatSession
}

func NewStore(cfg config.SessionConfig, logger *zap.Logger) *Store {
	return &Store{
		cache:  gocache.New(cfg.TTL, cfg.CleanupInterval),
		logger: logger,
	}
}

// Create registers a new empty session and returns a snapshot of it.
func (s *Store) Create() entity.ChatSession {
	now := time.Now()
	entry := &sessionEntry{
		session: entity.ChatSession{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	s.cache.Set(entry.session.ID, entry, gocache.DefaultExpiration)

	s.logger.Info("chat session created", zap.String("session_id", entry.session.ID))

	return snapshot(&entry.session)
}

// Get returns a snapshot of the session. Reading refreshes the session TTL.
func (s *Store) Get(id string) (entity.ChatSession, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return entity.ChatSession{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshot(&entry.session), nil
}

// SetSource installs a new active source with its bounded context. The
// transcript is cleared: switching source identity always starts a fresh
// conversation, and callers only invoke SetSource on an identity change.
func (s *Store) SetSource(id string, source entity.Source, context entity.BoundedContext) (entity.ChatSession, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return entity.ChatSession{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.session.Source = &source
	entry.session.Context = &context
	entry.session.Turns = nil
	entry.session.UpdatedAt = time.Now()

	return snapshot(&entry.session), nil
}

// Append adds turns to the transcript in order.
func (s *Store) Append(id string, turns ...entity.ConversationTurn) (entity.ChatSession, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return entity.ChatSession{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.session.Turns = append(entry.session.Turns, turns...)
	entry.session.UpdatedAt = time.Now()

	return snapshot(&entry.session), nil
}

// Reset clears the transcript and drops the cached source and context.
func (s *Store) Reset(id string) (entity.ChatSession, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return entity.ChatSession{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.session.Source = nil
	entry.session.Context = nil
	entry.session.Turns = nil
	entry.session.UpdatedAt = time.Now()

	return snapshot(&entry.session), nil
}

// Delete ends a session immediately.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
	s.logger.Info("chat session deleted", zap.String("session_id", id))
}

func (s *Store) lookup(id string) (*sessionEntry, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	// Sliding expiry: any access keeps the session alive.
	s.cache.Set(id, v, gocache.DefaultExpiration)

	return v.(*sessionEntry), nil
}

// snapshot copies the session so callers never share the stored slice.
func snapshot(sess *entity.ChatSession) entity.ChatSession {
	out := *sess
	if sess.Turns != nil {
		out.Turns = make([]entity.ConversationTurn, len(sess.Turns))
		copy(out.Turns, sess.Turns)
	}
	return out
}

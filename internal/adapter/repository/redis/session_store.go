package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiri/xiri-api/internal/domain"
)

// SessionStore implements usecase.SessionStore using Redis. Sessions expire
// after the configured TTL; a view mode change keeps the remaining TTL so
// switching views never extends a session.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// Create stores a new session record.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.prefix+session.ID, data, s.ttl).Err()
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// SetViewMode updates the session's view mode in place, preserving its TTL.
func (s *SessionStore) SetViewMode(ctx context.Context, id string, mode domain.ViewMode) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	session.ViewMode = mode
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.prefix+id, data, redis.KeepTTL).Err()
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}

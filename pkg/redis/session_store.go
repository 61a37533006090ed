package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/workersession/pkg/session"
)

// DefaultKeyPrefix namespaces session keys
const DefaultKeyPrefix = "session:"

// SessionStore implements session.Store on top of Redis.
// Records are stored as JSON with a TTL matching their expiry, so Redis
// evicts them on its own and DeleteExpired has nothing to do.
type SessionStore struct {
	db     redis.UniversalClient
	prefix string
}

// NewSessionStore wraps client. An empty prefix falls back to DefaultKeyPrefix.
func NewSessionStore(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{db: client, prefix: prefix}
}

// NewSessionStoreFromConfig wraps client using the key prefix from cfg.
func NewSessionStoreFromConfig(client redis.UniversalClient, cfg Config) *SessionStore {
	return NewSessionStore(client, cfg.KeyPrefix)
}

func (s *SessionStore) key(token string) string {
	return s.prefix + token
}

// Get returns session.ErrSessionNotFound for missing keys.
func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, session.ErrSessionNotFound
	}

	val, err := s.db.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess session.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, errors.Join(ErrCorruptedSession, err)
	}
	if sess.IsExpired() {
		return nil, session.ErrSessionExpired
	}
	return &sess, nil
}

// Save stores the session with a TTL until its expiry. An already expired
// session is removed instead.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.Token == "" {
		return session.ErrInvalidSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.Token)
	}

	val, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, s.key(sess.Token), val, ttl).Err()
}

// Delete removes a key. Empty tokens are ignored.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.Del(ctx, s.key(token)).Err()
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (s *SessionStore) DeleteExpired(context.Context) error {
	return nil
}

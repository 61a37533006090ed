package redis

import (
	"context"
	"errors"
	"time"
)

// healthKey is shorter than any session id, so it can share the prefix
// without ever colliding with a session.
const (
	healthKey = "healthcheck"
	healthTTL = 10 * time.Second
)

// Healthcheck returns a readiness check for the session store. Besides a
// PING it writes a short-lived key under the session prefix, which fails on
// read-only replicas and when the server refuses writes at maxmemory.
func (s *SessionStore) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.db.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := s.db.Set(ctx, s.key(healthKey), time.Now().Unix(), healthTTL).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

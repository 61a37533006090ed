package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the persisted session record
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	Data           map[string]any `json:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSession creates a new session record expiring ttl after now
func NewSession(token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return s.ExpiredAt(time.Now())
}

// ExpiredAt reports whether the session is expired at the given moment.
func (s *Session) ExpiredAt(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}

// Touch updates the last activity time and pushes the expiry ttl ahead of now
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	if s == nil {
		return
	}
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Clone returns a copy of the record whose Data map is not shared with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Data != nil {
		c.Data = make(map[string]any, len(s.Data))
		maps.Copy(c.Data, s.Data)
	}
	return &c
}

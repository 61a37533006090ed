package session

import (
	"context"
)

// Store defines the interface for session persistence.
// Implementations are shared by every worker and must be safe for concurrent use.
type Store interface {
	// Get retrieves a session by token.
	// Returns ErrSessionNotFound or ErrSessionExpired when there is nothing usable.
	Get(ctx context.Context, token string) (*Session, error)

	// Save creates or replaces the session keyed by its token
	Save(ctx context.Context, session *Session) error

	// Delete removes a session by token. Deleting a missing session is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions
	DeleteExpired(ctx context.Context) error
}

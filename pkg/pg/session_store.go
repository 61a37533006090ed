package pg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/workersession/pkg/session"
)

// DB is the part of *pgxpool.Pool the session store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	selectSessionSQL = `SELECT id::text, data, created_at, last_activity_at, expires_at FROM sessions WHERE token = $1`

	upsertSessionSQL = `INSERT INTO sessions (token, id, data, created_at, last_activity_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (token) DO UPDATE SET
	id = EXCLUDED.id,
	data = EXCLUDED.data,
	last_activity_at = EXCLUDED.last_activity_at,
	expires_at = EXCLUDED.expires_at`

	deleteSessionSQL = `DELETE FROM sessions WHERE token = $1`

	deleteExpiredSQL = `DELETE FROM sessions WHERE expires_at < $1`
)

// SessionStore implements session.Store on the sessions table created by Migrate.
type SessionStore struct {
	db DB
}

func NewSessionStore(db DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get loads a session by token.
func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	var (
		id   string
		data []byte
		sess = session.Session{Token: token}
	)

	err := s.db.QueryRow(ctx, selectSessionSQL, token).
		Scan(&id, &data, &sess.CreatedAt, &sess.LastActivityAt, &sess.ExpiresAt)
	if IsNotFoundError(err) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if sess.ID, err = uuid.Parse(id); err != nil {
		return nil, errors.Join(ErrCorruptedSession, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess.Data); err != nil {
			return nil, errors.Join(ErrCorruptedSession, err)
		}
	}
	if sess.Data == nil {
		sess.Data = make(map[string]any)
	}

	if sess.IsExpired() {
		return nil, session.ErrSessionExpired
	}
	return &sess, nil
}

// Save upserts the session row keyed by token.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.Token == "" {
		return session.ErrInvalidSession
	}

	data := sess.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, upsertSessionSQL,
		sess.Token, sess.ID.String(), string(raw),
		sess.CreatedAt, sess.LastActivityAt, sess.ExpiresAt,
	)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, deleteSessionSQL, token)
	return err
}

func (s *SessionStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.Exec(ctx, deleteExpiredSQL, time.Now())
	return err
}

package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Status is the engine state for the current request
type Status uint8

const (
	StatusInactive Status = iota
	StatusActive
)

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "inactive"
}

const tokenBytes = 32

// Engine holds the session state of one worker. A worker serves requests one
// after another, so the engine is reused: Reset must run before each request.
// Engine is not safe for concurrent use.
//
// Record timestamps always come from the wall clock, the same clock stores
// use to decide expiry.
type Engine struct {
	store       Store
	maxLifetime time.Duration
	strict      bool

	id     string
	status Status
	data   map[string]any
	record *Session
}

// NewEngine creates an engine backed by store
func NewEngine(store Store, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newEngine(store, o)
}

func newEngine(store Store, o options) *Engine {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Engine{
		store:       store,
		maxLifetime: o.maxLifetime,
		strict:      o.strict,
	}
}

// Reset discards everything left by the previous request: id, data and status.
func (e *Engine) Reset() {
	e.id = ""
	e.status = StatusInactive
	e.data = nil
	e.record = nil
}

// SetID binds token as the id the next Start will use.
// It fails with ErrSessionActive while a session is started.
func (e *Engine) SetID(token string) error {
	if e.status == StatusActive {
		return ErrSessionActive
	}
	e.id = token
	return nil
}

// ID returns the current session id, empty when there is none.
func (e *Engine) ID() string { return e.id }

func (e *Engine) Status() Status { return e.status }

// Start loads the session bound by SetID or creates a new one.
// In strict mode an unknown or expired id is replaced with a fresh one;
// otherwise the client supplied id is adopted if it is well formed.
// Calling Start on an active engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	if e.status == StatusActive {
		return nil
	}

	if e.id != "" {
		rec, err := e.store.Get(ctx, e.id)
		switch {
		case err == nil:
			e.activate(rec)
			return nil
		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
			if !e.strict && ValidToken(e.id) {
				e.activate(NewSession(e.id, time.Now(), e.maxLifetime))
				return nil
			}
		default:
			return errors.Join(ErrStartFailed, err)
		}
	}

	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrStartFailed, err)
	}
	e.id = token
	e.activate(NewSession(token, time.Now(), e.maxLifetime))
	return nil
}

func (e *Engine) activate(rec *Session) {
	e.record = rec
	e.data = make(map[string]any, len(rec.Data))
	maps.Copy(e.data, rec.Data)
	e.status = StatusActive
}

// Get retrieves a value from session data
func (e *Engine) Get(key string) (any, bool) {
	if e.data == nil {
		return nil, false
	}
	v, ok := e.data[key]
	return v, ok
}

// GetString retrieves a string value from session data
func (e *Engine) GetString(key string) (string, bool) {
	v, ok := e.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt retrieves an int value from session data.
// Numbers decoded by stores come back as float64 (JSON) or int32/int64 (BSON), so all are accepted.
func (e *Engine) GetInt(key string) (int, bool) {
	v, ok := e.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (e *Engine) GetBool(key string) (bool, bool) {
	v, ok := e.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set stores a value in session data. Values are persisted only if the
// session is active when the request ends; Start replaces anything set before it.
func (e *Engine) Set(key string, value any) {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[key] = value
}

// Delete removes a value from session data
func (e *Engine) Delete(key string) {
	delete(e.data, key)
}

// Clear removes all data from the session
func (e *Engine) Clear() {
	clear(e.data)
}

// Regenerate moves the active session to a new id. With deleteOld the
// record stored under the previous id is removed.
func (e *Engine) Regenerate(ctx context.Context, deleteOld bool) error {
	if e.status != StatusActive {
		return ErrSessionInactive
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	if deleteOld {
		if err := e.store.Delete(ctx, e.id); err != nil {
			return errors.Join(ErrDestroyFailed, err)
		}
	}

	rec := e.record.Clone()
	rec.ID = uuid.New()
	rec.Token = token
	e.record = rec
	e.id = token
	return nil
}

// Destroy deletes the stored session and clears id and data.
// The engine is inactive afterwards, so nothing is written back on flush.
func (e *Engine) Destroy(ctx context.Context) error {
	if e.status != StatusActive {
		return ErrSessionInactive
	}
	if err := e.store.Delete(ctx, e.id); err != nil {
		return errors.Join(ErrDestroyFailed, err)
	}
	e.Reset()
	return nil
}

// Abort closes the session without writing changes back. The id is kept.
func (e *Engine) Abort() {
	e.status = StatusInactive
	e.record = nil
}

// FlushAndClose persists the active session and marks the engine inactive.
// The status changes even when the store write fails.
func (e *Engine) FlushAndClose(ctx context.Context) error {
	if e.status != StatusActive {
		return nil
	}
	e.status = StatusInactive

	rec := e.record
	if rec == nil {
		rec = NewSession(e.id, time.Now(), e.maxLifetime)
	}
	rec.Token = e.id
	rec.Data = make(map[string]any, len(e.data))
	maps.Copy(rec.Data, e.data)
	rec.Touch(time.Now(), e.maxLifetime)
	e.record = nil

	if err := e.store.Save(ctx, rec); err != nil {
		return errors.Join(ErrFlushFailed, err)
	}
	return nil
}

// generateToken creates a URL-safe random token
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidToken reports whether token has the shape of a session id: 16 to 128
// characters of the base64url alphabet, which covers what generateToken
// produces. Such a token is also safe as a file name or object key.
func ValidToken(token string) bool {
	if len(token) < 16 || len(token) > 128 {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

package session

import "errors"

var (
	// ErrHeadersAlreadySent indicates the response was already flushed, so no cookie can be emitted
	ErrHeadersAlreadySent = errors.New("session.headers_already_sent")

	// ErrSessionActive indicates the id cannot change while a session is started
	ErrSessionActive = errors.New("session.already_active")

	// ErrSessionInactive indicates the operation needs a started session
	ErrSessionInactive = errors.New("session.not_active")

	// ErrInvalidSession indicates a nil session or one without a token
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	ErrStartFailed   = errors.New("session.start_failed")
	ErrFlushFailed   = errors.New("session.flush_failed")
	ErrDestroyFailed = errors.New("session.destroy_failed")

	// ErrInvalidConfig indicates the session configuration was rejected at startup
	ErrInvalidConfig = errors.New("session.invalid_config")
)

package worker

import "github.com/dmitrymomot/workersession/pkg/session"

// Worker is a persistent request processor. It owns one session middleware,
// and therefore one engine, reused for every request it serves until recycled.
// Only the worker's own goroutine touches its fields.
type Worker struct {
	id           int
	mw           *session.Middleware
	served       uint64
	sinceRecycle uint64
}

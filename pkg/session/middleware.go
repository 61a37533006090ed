package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/workersession/handler"
	"github.com/dmitrymomot/workersession/pkg/cookie"
	"github.com/dmitrymomot/workersession/pkg/logger"
)

// HeadersSentReporter is implemented by response writers that know whether
// the status line and headers already went out to the client.
type HeadersSentReporter interface {
	HeadersSent() bool
}

// Middleware runs the session lifecycle around a handler for one worker.
type Middleware struct {
	engine     *Engine
	cookieName string
	attrs      cookie.Attributes
	now        func() time.Time
	log        *slog.Logger
}

// New creates a Middleware with its own Engine backed by store.
// A nil store falls back to a MemoryStore.
func New(store Store, opts ...Option) *Middleware {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Middleware{
		engine:     newEngine(store, o),
		cookieName: o.cookieName,
		attrs:      o.attrs,
		now:        o.now,
		log:        o.log,
	}
}

// Engine returns the engine this middleware drives
func (m *Middleware) Engine() *Engine {
	return m.engine
}

// Process resets the engine, binds the id from the request cookie and runs next
// with the engine in the request context. When the handler leaves a different
// id behind, the response carries a Set-Cookie for it, or a deletion cookie when
// the id was cleared.
//
// An active session is flushed on every way out of Process, panics included.
// Handler errors are returned as is. A flush failure after a successful handler
// replaces the response with an error wrapping ErrFlushFailed.
func (m *Middleware) Process(b HeadersSentReporter, r *http.Request, next handler.Handler) (resp handler.Response, err error) {
	if b != nil && b.HeadersSent() {
		return nil, ErrHeadersAlreadySent
	}

	e := m.engine
	e.Reset()

	oldID := cookie.Extract(strings.Join(r.Header.Values("Cookie"), "; "), m.cookieName)
	if err := e.SetID(oldID); err != nil {
		return nil, err
	}

	ctx := r.Context()
	completed := false
	defer func() {
		if e.Status() != StatusActive {
			return
		}
		ferr := e.FlushAndClose(context.WithoutCancel(ctx))
		if ferr == nil {
			return
		}
		if !completed || err != nil {
			m.log.ErrorContext(ctx, "session flush failed after handler failure",
				logger.Component("session"),
				logger.Error(ferr),
			)
			return
		}
		resp, err = nil, ferr
	}()

	resp, err = next.Handle(r.WithContext(WithEngine(ctx, e)))
	completed = true
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	newID := e.ID()
	if newID == oldID {
		return resp, nil
	}

	if newID == "" {
		m.log.DebugContext(ctx, "session destroyed", logger.Component("session"))
		return handler.WithCookies(resp, cookie.Expire(m.cookieName, m.attrs)), nil
	}
	return handler.WithCookies(resp, cookie.Build(m.cookieName, newID, m.attrs, m.now())), nil
}

// Decorator adapts the middleware to handler.Chain for callers that have no
// response writer to check, such as background jobs and tests.
func (m *Middleware) Decorator() handler.Decorator {
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(r *http.Request) (handler.Response, error) {
			return m.Process(nil, r, next)
		})
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/workersession/handler"
	"github.com/dmitrymomot/workersession/pkg/logger"
	"github.com/dmitrymomot/workersession/pkg/session"
)

const counterKey = "counter"

type app struct {
	log *slog.Logger
}

// newApp returns the handler the workers run. It dispatches on the path
// itself because chi routing happens before a request reaches the pool.
func newApp(log *slog.Logger) handler.Handler {
	a := &app{log: log}
	legacy := handler.Buffer(http.HandlerFunc(a.legacy))

	routes := map[string]handler.Handler{
		"/":           only(http.MethodGet, a.home),
		"/counter":    only(http.MethodGet, a.counter),
		"/regenerate": only(http.MethodPost, a.regenerate),
		"/logout":     only(http.MethodPost, a.logout),
		"/legacy":     legacy,
	}

	return handler.HandlerFunc(func(r *http.Request) (handler.Response, error) {
		h, ok := routes[r.URL.Path]
		if !ok {
			return nil, handler.ErrNotFound
		}
		return h.Handle(r)
	})
}

func only(method string, fn handler.HandlerFunc) handler.Handler {
	return handler.HandlerFunc(func(r *http.Request) (handler.Response, error) {
		if r.Method != method {
			return nil, handler.ErrMethodNotAllowed
		}
		return fn(r)
	})
}

// visit starts the session and increments its counter.
func visit(r *http.Request) (*session.Engine, int, error) {
	sess := session.MustFromContext(r.Context())
	if err := sess.Start(r.Context()); err != nil {
		return nil, 0, err
	}
	n, _ := sess.GetInt(counterKey)
	n++
	sess.Set(counterKey, n)
	return sess, n, nil
}

func (a *app) home(r *http.Request) (handler.Response, error) {
	_, n, err := visit(r)
	if err != nil {
		return nil, err
	}
	return handler.HTML(counterPage(n)), nil
}

func (a *app) counter(r *http.Request) (handler.Response, error) {
	sess, n, err := visit(r)
	if err != nil {
		return nil, err
	}
	return handler.JSON(map[string]any{
		"counter": n,
		"status":  sess.Status().String(),
	}), nil
}

func (a *app) regenerate(r *http.Request) (handler.Response, error) {
	sess := session.MustFromContext(r.Context())
	if err := sess.Start(r.Context()); err != nil {
		return nil, err
	}
	if err := sess.Regenerate(r.Context(), true); err != nil {
		return nil, err
	}
	a.log.InfoContext(r.Context(), "session id rotated", logger.Event("session_regenerated"))

	n, _ := sess.GetInt(counterKey)
	return handler.JSON(map[string]any{"counter": n}), nil
}

func (a *app) logout(r *http.Request) (handler.Response, error) {
	sess := session.MustFromContext(r.Context())
	if err := sess.Start(r.Context()); err != nil {
		return nil, err
	}
	if err := sess.Destroy(r.Context()); err != nil {
		return nil, err
	}
	a.log.InfoContext(r.Context(), "session destroyed", logger.Event("session_destroyed"))
	return handler.EmptyWithStatus(http.StatusNoContent), nil
}

// legacy is a plain net/http handler; the session engine is still reachable
// through the request context.
func (a *app) legacy(w http.ResponseWriter, r *http.Request) {
	_, n, err := visit(r)
	if err != nil {
		a.log.ErrorContext(r.Context(), "legacy visit failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, strconv.Itoa(n))
}

const pageTemplate = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>sessiond</title></head>
<body>
<h1>Visits: %d</h1>
<form method="post" action="/regenerate"><button>Rotate session id</button></form>
<form method="post" action="/logout"><button>Log out</button></form>
</body>
</html>
`

func counterPage(n int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, pageTemplate, n)
		return err
	})
}

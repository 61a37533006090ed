package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/workersession/pkg/logger"
)

// HealthCheckHandler returns a HTTP handler that can be used for both
// liveness and readiness checks.
//
//   - Liveness: when no checks are supplied the handler returns 200 OK with
//     body "ALIVE".
//   - Readiness: every check runs with the request context; if they all
//     succeed the handler returns 200 OK with body "READY", otherwise 503
//     with body "NOT_READY".
//
// Store checks such as redis.SessionStore.Healthcheck, pg.Healthcheck and
// mongo.Healthcheck fit the check signature.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

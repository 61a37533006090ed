package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/workersession/pkg/cookie"
)

// Option configures an Engine and the Middleware that owns it
type Option func(*options)

type options struct {
	cookieName  string
	attrs       cookie.Attributes
	maxLifetime time.Duration
	strict      bool
	now         func() time.Time
	log         *slog.Logger
}

func defaultOptions() options {
	return options{
		cookieName:  DefaultCookieName,
		attrs:       cookie.DefaultAttributes(),
		maxLifetime: DefaultMaxLifetime,
		strict:      true,
		now:         time.Now,
		log:         slog.New(slog.DiscardHandler),
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.cookieName = name
		}
	}
}

// WithCookieAttributes sets the attributes of emitted session cookies
func WithCookieAttributes(a cookie.Attributes) Option {
	return func(o *options) {
		o.attrs = a
	}
}

// WithMaxLifetime sets how long an idle session is kept by the store.
// It is independent of the cookie lifetime.
func WithMaxLifetime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxLifetime = d
		}
	}
}

// WithStrictMode controls whether unknown tokens sent by clients are replaced
// by freshly generated ones on Start. Enabled by default.
func WithStrictMode(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithClock overrides the time source for cookie Expires dates. Record
// expiry stays on the wall clock stores compare against.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

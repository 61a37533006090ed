package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/workersession/pkg/logger"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
	closers         []closer
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// Server wraps http.Server with graceful shutdown and logging.
type Server struct {
	cfg     *config
	srv     *http.Server
	once    sync.Once
	mu      sync.Mutex
	stopErr error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Nop()
	}
	return &Server{cfg: cfg}
}

// Run starts the HTTP server and blocks until ctx is done, SIGINT/SIGTERM
// arrives or the listener fails. Shutdown errors, including those of
// registered closers, are returned wrapped with ErrShutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 && cfg.readTimeout != 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 && cfg.writeTimeout != 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 && cfg.idleTimeout != 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	srv.Handler = handler
	s.srv = srv
	s.mu.Unlock()

	for _, h := range cfg.startHooks {
		h(cfg.logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	cfg.logger.InfoContext(ctx, "http server started", slog.String("addr", srv.Addr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		cfg.logger.InfoContext(ctx, "shutting down", slog.String("reason", "context done"))
		_ = s.Shutdown(context.WithoutCancel(ctx))
		runErr = <-errCh
	case sig := <-stop:
		cfg.logger.InfoContext(ctx, "shutting down", slog.String("signal", sig.String()))
		_ = s.Shutdown(context.WithoutCancel(ctx))
		runErr = <-errCh
	case runErr = <-errCh:
		s.runClosers(context.WithoutCancel(ctx))
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopErr
}

// Shutdown stops the listener gracefully, then runs stop hooks and closers.
// It is safe for repeated calls; only the first one does work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		var errs []error
		if srv != nil {
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
		}
		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
		if err := s.closeAll(ctx); err != nil {
			errs = append(errs, err)
		}

		if len(errs) > 0 {
			s.mu.Lock()
			s.stopErr = errors.Join(append([]error{ErrShutdown}, errs...)...)
			s.mu.Unlock()
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopErr
}

// runClosers releases resources when the listener failed on its own.
func (s *Server) runClosers(ctx context.Context) {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		_ = s.closeAll(ctx)
	})
}

func (s *Server) closeAll(ctx context.Context) error {
	var errs []error
	for i := len(s.cfg.closers) - 1; i >= 0; i-- {
		c := s.cfg.closers[i]
		if err := c.fn(ctx); err != nil {
			s.cfg.logger.ErrorContext(ctx, "closer failed",
				logger.Component(c.name),
				logger.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		s.cfg.logger.DebugContext(ctx, "closed", logger.Component(c.name))
	}
	return errors.Join(errs...)
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/workersession/handler"
	"github.com/dmitrymomot/workersession/pkg/logger"
	"github.com/dmitrymomot/workersession/pkg/session"
)

// Factory builds the session middleware, and with it the engine, a worker owns.
type Factory func() *session.Middleware

// Pool dispatches requests to a fixed set of persistent workers.
// Each worker handles one request at a time with its own session engine;
// workers share only the session store.
type Pool struct {
	handler      handler.Handler
	factory      Factory
	maxJobs      uint64
	logger       *slog.Logger
	errorHandler handler.ErrorHandler

	jobs      chan job
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	workers   []*Worker
}

type job struct {
	b      session.HeadersSentReporter
	r      *http.Request
	result chan<- result
}

type result struct {
	resp handler.Response
	err  error
}

// New starts a pool of workers that run h behind the session middleware built by factory.
func New(h handler.Handler, factory Factory, opts ...Option) (*Pool, error) {
	if h == nil {
		return nil, ErrNoHandler
	}
	if factory == nil {
		return nil, ErrNoFactory
	}

	o := &options{
		workers: 4,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.errorHandler == nil {
		o.errorHandler = handler.DefaultErrorHandler(o.logger)
	}

	p := &Pool{
		handler:      h,
		factory:      factory,
		maxJobs:      o.maxJobs,
		logger:       o.logger,
		errorHandler: o.errorHandler,
		jobs:         make(chan job),
		quit:         make(chan struct{}),
		workers:      make([]*Worker, o.workers),
	}

	for i := range p.workers {
		w := &Worker{id: i + 1, mw: factory()}
		p.workers[i] = w
		p.wg.Add(1)
		go p.run(w)
	}

	p.logger.Info("worker pool started",
		slog.Int("workers", o.workers),
		slog.Uint64("max_jobs", o.maxJobs),
		logger.Component("worker"),
	)

	return p, nil
}

// Do hands r to the next free worker and waits for the result.
// The request context is honoured only while waiting for a worker; an accepted
// request always runs to completion.
func (p *Pool) Do(b session.HeadersSentReporter, r *http.Request) (handler.Response, error) {
	select {
	case <-p.quit:
		return nil, errors.Join(ErrPoolClosed, handler.ErrServiceUnavailable)
	default:
	}

	res := make(chan result, 1)
	select {
	case p.jobs <- job{b: b, r: r, result: res}:
	case <-r.Context().Done():
		return nil, errors.Join(ErrRequestCanceled, r.Context().Err())
	case <-p.quit:
		return nil, errors.Join(ErrPoolClosed, handler.ErrServiceUnavailable)
	}

	out := <-res
	return out.resp, out.err
}

// ServeHTTP implements http.Handler
func (p *Pool) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	resp, err := p.Do(rw, r)
	if err == nil && resp == nil {
		err = handler.ErrNilResponse
	}
	if err != nil {
		if rw.HeadersSent() {
			p.logger.ErrorContext(r.Context(), "request failed after headers were sent",
				logger.Error(err),
				logger.Component("worker"),
			)
			return
		}
		p.errorHandler(rw, r, err)
		return
	}

	if err := resp.Render(rw, r); err != nil {
		if rw.HeadersSent() {
			p.logger.ErrorContext(r.Context(), "response render failed",
				logger.Error(err),
				logger.Component("worker"),
			)
			return
		}
		p.errorHandler(rw, r, err)
	}
}

// Close stops accepting requests and waits for in-flight ones to finish.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		p.logger.Info("worker pool stopped", logger.Component("worker"))
	})
	return nil
}

// Run returns a function suitable for errgroup: it blocks until ctx is done
// and then closes the pool.
func (p *Pool) Run(ctx context.Context) func() error {
	return func() error {
		<-ctx.Done()
		return p.Close()
	}
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return len(p.workers)
}

func (p *Pool) run(w *Worker) {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return
		case j := <-p.jobs:
			j.result <- p.serve(w, j)
		}
	}
}

// serve runs a single request on w and recycles w's session middleware when
// it reached the job limit.
func (p *Pool) serve(w *Worker, j job) (res result) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			res = result{err: errors.Join(ErrHandlerPanic, fmt.Errorf("%v", rec))}
			p.logger.ErrorContext(j.r.Context(), "handler panicked",
				logger.WorkerID(w.id),
				slog.Any("panic", rec),
				logger.Component("worker"),
			)
		}

		w.served++
		w.sinceRecycle++
		if p.maxJobs > 0 && w.sinceRecycle >= p.maxJobs {
			w.mw = p.factory()
			w.sinceRecycle = 0
			p.logger.DebugContext(j.r.Context(), "worker recycled",
				logger.WorkerID(w.id),
				logger.Jobs(w.served),
				logger.Component("worker"),
			)
		}
	}()

	resp, err := w.mw.Process(j.b, j.r, p.handler)

	p.logger.DebugContext(j.r.Context(), "request served",
		logger.WorkerID(w.id),
		logger.Duration(time.Since(start)),
		logger.Component("worker"),
	)
	return result{resp: resp, err: err}
}

// Package worker runs handlers on a fixed pool of persistent workers.
//
// Every worker owns a session.Middleware built by a Factory and serves one
// request at a time, so the session engine inside it is reused across
// unrelated requests. The middleware resets that engine before each request
// and flushes it before the worker picks up the next one.
//
//	pool, err := worker.New(h, func() *session.Middleware {
//	    return session.New(store, session.WithCookieAttributes(attrs))
//	}, worker.WithWorkers(8), worker.WithMaxJobs(1000))
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//	http.Handle("/", pool)
//
// ResponseWriter records whether headers went out and is what the session
// middleware checks before touching any state.
package worker

// Package session keeps per-client session state correct on persistent workers.
//
// A worker process serves many unrelated requests one after another with the
// same memory. Each worker owns one Engine. Middleware.Process wraps every
// request handled by that worker:
//
//  1. refuses to run when the response headers already went out
//     (ErrHeadersAlreadySent), before touching any state;
//  2. resets the engine so nothing from the previous request survives;
//  3. binds the id found in the session cookie;
//  4. runs the handler with the engine available via FromContext;
//  5. attaches a Set-Cookie when the id changed (new, regenerated or destroyed);
//  6. flushes an active session to the Store on every exit path.
//
// Handlers work with the engine much like PHP's session API:
//
//	func counter(r *http.Request) (handler.Response, error) {
//	    sess := session.MustFromContext(r.Context())
//	    if err := sess.Start(r.Context()); err != nil {
//	        return nil, err
//	    }
//	    n, _ := sess.GetInt("counter")
//	    sess.Set("counter", n+1)
//	    return handler.Text(strconv.Itoa(n + 1)), nil
//	}
//
// Stores are pluggable. MemoryStore lives here; Redis, PostgreSQL, MongoDB,
// local files and S3 adapters live in their own packages. Collector runs
// Store.DeleteExpired periodically.
package session

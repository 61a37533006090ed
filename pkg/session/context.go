package session

import "context"

type engineContextKey struct{}

// WithEngine adds the worker's session engine to the context
func WithEngine(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, engineContextKey{}, e)
}

// FromContext retrieves the session engine from the context
func FromContext(ctx context.Context) (*Engine, bool) {
	e, ok := ctx.Value(engineContextKey{}).(*Engine)
	return e, ok && e != nil
}

// MustFromContext retrieves the session engine from the context or panics
func MustFromContext(ctx context.Context) *Engine {
	e, ok := FromContext(ctx)
	if !ok {
		panic("session: engine not found in context")
	}
	return e
}

package dispatch

import "context"

// HandleFunc is a single envelope invocation: it dispatches env and returns
// the channel carrying its eventual result.
type HandleFunc func(ctx context.Context, env Envelope) <-chan Result

// MiddlewareFunc wraps a HandleFunc to add behavior around handler
// invocation. Middleware runs only on registry hits; routing misses are
// produced by the bus before any handler engagement.
type MiddlewareFunc func(next HandleFunc) HandleFunc

// applyMiddleware applies a chain of middleware to a HandleFunc.
// Middleware is applied in reverse order: for middlewares A, B, C,
// the execution flow is A→B→C→handle.
func applyMiddleware(handle HandleFunc, middleware ...MiddlewareFunc) HandleFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		handle = middleware[i](handle)
	}
	return handle
}

package middleware

import (
	"context"
	"time"

	"github.com/fxsml/dispatch"
)

// ObserverFunc receives the outcome of a dispatch after the handler finishes.
type ObserverFunc func(env dispatch.Envelope, res dispatch.Result, elapsed time.Duration)

// UseObserver creates middleware that reports each dispatch outcome to
// observe, typically to feed metrics collectors. The result is forwarded
// unchanged.
func UseObserver(observe ObserverFunc) dispatch.MiddlewareFunc {
	return func(next dispatch.HandleFunc) dispatch.HandleFunc {
		return func(ctx context.Context, env dispatch.Envelope) <-chan dispatch.Result {
			start := time.Now()
			results := next(ctx, env)

			out := make(chan dispatch.Result, 1)
			go func() {
				defer close(out)
				for res := range results {
					observe(env, res, time.Since(start))
					out <- res
				}
			}()
			return out
		}
	}
}

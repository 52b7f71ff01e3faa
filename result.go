package dispatch

import (
	"context"
	"fmt"
)

// Result carries the outcome of an asynchronous dispatch.
// Exactly one of Value and Err is meaningful: a nil Err marks success.
type Result struct {
	Value any
	Err   error
}

// resolved builds an already-delivered success result channel.
func resolved(v any) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Value: v}
	close(ch)
	return ch
}

// failed builds an already-delivered failure result channel.
// Used by the buses for routing misses, which never touch a handler and are
// therefore immune to cancellation.
func failed(err error) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Err: err}
	close(ch)
	return ch
}

// Await blocks until a result arrives, the channel closes, or ctx is done,
// and asserts the success value to R.
// A channel that closes without delivering yields ErrNoResult.
func Await[R any](ctx context.Context, results <-chan Result) (R, error) {
	var zero R
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res, ok := <-results:
		if !ok {
			return zero, ErrNoResult
		}
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Value == nil {
			return zero, nil
		}
		v, ok := res.Value.(R)
		if !ok {
			return zero, fmt.Errorf("dispatch: unexpected result type %T", res.Value)
		}
		return v, nil
	}
}

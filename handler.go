package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// CommandHandler processes commands of a single concrete type.
// Implementations are registered on a CommandBus and invoked only through it.
type CommandHandler interface {
	// CommandType returns the type descriptor used purely for registration
	// keying.
	CommandType() string
	// Handle executes the command and delivers exactly one Result on the
	// returned channel before closing it.
	Handle(ctx context.Context, cmd Command) <-chan Result
}

// QueryHandler processes queries of a single concrete type.
type QueryHandler interface {
	// QueryType returns the type descriptor used purely for registration
	// keying.
	QueryType() string
	// Handle executes the query and delivers exactly one Result on the
	// returned channel before closing it.
	Handle(ctx context.Context, qry Query) <-chan Result
}

// RecoveryError wraps a panic raised inside a handler built with WithRecover.
type RecoveryError struct {
	PanicValue any
	StackTrace string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.PanicValue)
}

// HandlerOption configures handlers built by NewCommandHandler and
// NewQueryHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	recover     bool
	timeout     time.Duration
	maxAttempts int
	backoff     BackoffFunc
}

func parseHandlerOptions(opts []HandlerOption) handlerConfig {
	var c handlerConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithRecover converts panics inside the handler function into failed results
// carrying a *RecoveryError instead of crashing the dispatching process.
func WithRecover() HandlerOption {
	return func(c *handlerConfig) {
		c.recover = true
	}
}

// WithTimeout bounds each handler invocation with a context deadline.
func WithTimeout(timeout time.Duration) HandlerOption {
	return func(c *handlerConfig) {
		c.timeout = timeout
	}
}

// WithRetry re-runs a failing handler function up to maxAttempts times in
// total, waiting backoff between attempts. Pass a nil backoff for immediate
// retries. Context errors are never retried.
func WithRetry(maxAttempts int, backoff BackoffFunc) HandlerOption {
	return func(c *handlerConfig) {
		c.maxAttempts = maxAttempts
		c.backoff = backoff
	}
}

// NewCommandHandler creates a CommandHandler from a typed function.
// The command type descriptor is derived from C via naming; use the same
// strategy as the bus the handler is registered on. The function runs on its
// own goroutine and its result, success or failure, is delivered verbatim.
func NewCommandHandler[C Command, R any](
	handle func(ctx context.Context, cmd C) (R, error),
	naming NamingStrategy,
	opts ...HandlerOption,
) CommandHandler {
	cfg := parseHandlerOptions(opts)
	name := typeNameFor[C](naming)
	return &commandHandler{
		commandType: name,
		handle: func(ctx context.Context, cmd Command) <-chan Result {
			c, ok := cmd.(C)
			if !ok {
				return failed(fmt.Errorf("dispatch: handler for %q cannot accept %T", name, cmd))
			}
			return run(ctx, cfg, func(ctx context.Context) (any, error) {
				return handle(ctx, c)
			})
		},
	}
}

// NewQueryHandler creates a QueryHandler from a typed function.
// The result type R is the query's declared result type; it never appears on
// the wire and exists only for static routing via Await[R].
func NewQueryHandler[Q Query, R any](
	handle func(ctx context.Context, qry Q) (R, error),
	naming NamingStrategy,
	opts ...HandlerOption,
) QueryHandler {
	cfg := parseHandlerOptions(opts)
	name := typeNameFor[Q](naming)
	return &queryHandler{
		queryType: name,
		handle: func(ctx context.Context, qry Query) <-chan Result {
			q, ok := qry.(Q)
			if !ok {
				return failed(fmt.Errorf("dispatch: handler for %q cannot accept %T", name, qry))
			}
			return run(ctx, cfg, func(ctx context.Context) (any, error) {
				return handle(ctx, q)
			})
		},
	}
}

type commandHandler struct {
	commandType string
	handle      func(ctx context.Context, cmd Command) <-chan Result
}

func (h *commandHandler) CommandType() string { return h.commandType }

func (h *commandHandler) Handle(ctx context.Context, cmd Command) <-chan Result {
	return h.handle(ctx, cmd)
}

type queryHandler struct {
	queryType string
	handle    func(ctx context.Context, qry Query) <-chan Result
}

func (h *queryHandler) QueryType() string { return h.queryType }

func (h *queryHandler) Handle(ctx context.Context, qry Query) <-chan Result {
	return h.handle(ctx, qry)
}

// run executes fn on a fresh goroutine and delivers exactly one Result.
func run(ctx context.Context, cfg handlerConfig, fn func(ctx context.Context) (any, error)) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)

		if cfg.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
			defer cancel()
		}

		attempt := func(ctx context.Context) (v any, err error) {
			if cfg.recover {
				defer func() {
					if r := recover(); r != nil {
						err = &RecoveryError{
							PanicValue: r,
							StackTrace: string(debug.Stack()),
						}
					}
				}()
			}
			return fn(ctx)
		}

		v, err := attempt(ctx)
		for n := 2; err != nil && n <= cfg.maxAttempts; n++ {
			if ctx.Err() != nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				break
			}
			if cfg.backoff != nil {
				select {
				case <-ctx.Done():
				case <-time.After(cfg.backoff(n - 1)):
				}
			}
			v, err = attempt(ctx)
		}

		if err != nil {
			out <- Result{Err: err}
			return
		}
		out <- Result{Value: v}
	}()
	return out
}

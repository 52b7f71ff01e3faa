package dispatch

import "context"

// CommandBus routes commands to their registered handlers.
// It is a thin façade over the registry plus the invoke-and-forward step and
// holds no other mutable state.
type CommandBus struct {
	registry   *registry[CommandHandler]
	naming     NamingStrategy
	middleware []MiddlewareFunc
	logger     Logger
}

// NewCommandBus creates a command bus. Register handlers during bootstrap,
// before dispatch traffic begins; registration stays safe under concurrency
// but late duplicates are rejected like any other.
func NewCommandBus(opts ...Option) *CommandBus {
	cfg := parseOptions(opts)
	return &CommandBus{
		registry:   newRegistry[CommandHandler](),
		naming:     cfg.naming,
		middleware: cfg.middleware,
		logger:     cfg.logger,
	}
}

// RegisterHandler adds handler under its declared command type.
// A second registration for the same type fails with *DuplicateHandlerError
// and leaves the first registration in place; bootstrap code should treat
// any error as fatal.
func (b *CommandBus) RegisterHandler(handler CommandHandler) error {
	if err := b.registry.register(handler.CommandType(), handler); err != nil {
		return err
	}
	b.logger.Debug("registered command handler", "type", handler.CommandType())
	return nil
}

// Execute routes cmd to the handler registered for its concrete type and
// returns that handler's result channel unchanged. When no handler is
// registered the returned channel already carries a *HandlerNotFoundError;
// no handler code runs and the result is unaffected by ctx.
func (b *CommandBus) Execute(ctx context.Context, cmd Command) <-chan Result {
	if cmd == nil {
		b.logger.Warn("no command handler", "type", "")
		return failed(&HandlerNotFoundError{})
	}

	name := TypeNameOf(b.naming, cmd)
	handler, ok := b.registry.lookup(name)
	if !ok {
		b.logger.Warn("no command handler",
			"type", name, "id", cmd.EnvelopeID())
		return failed(&HandlerNotFoundError{EnvelopeType: name})
	}

	b.logger.Debug("dispatching command",
		"type", name, "id", cmd.EnvelopeID(), "principal", cmd.Principal())

	if len(b.middleware) == 0 {
		return handler.Handle(ctx, cmd)
	}
	handle := applyMiddleware(func(ctx context.Context, env Envelope) <-chan Result {
		return handler.Handle(ctx, env.(Command))
	}, b.middleware...)
	return handle(ctx, cmd)
}

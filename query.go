package dispatch

import "context"

// QueryBus routes queries to their registered handlers.
// Like CommandBus it is a stateless dispatcher over a write-once registry.
type QueryBus struct {
	registry   *registry[QueryHandler]
	naming     NamingStrategy
	middleware []MiddlewareFunc
	logger     Logger
}

// NewQueryBus creates a query bus.
func NewQueryBus(opts ...Option) *QueryBus {
	cfg := parseOptions(opts)
	return &QueryBus{
		registry:   newRegistry[QueryHandler](),
		naming:     cfg.naming,
		middleware: cfg.middleware,
		logger:     cfg.logger,
	}
}

// RegisterHandler adds handler under its declared query type.
// A second registration for the same type fails with *DuplicateHandlerError
// and leaves the first registration in place.
func (b *QueryBus) RegisterHandler(handler QueryHandler) error {
	if err := b.registry.register(handler.QueryType(), handler); err != nil {
		return err
	}
	b.logger.Debug("registered query handler", "type", handler.QueryType())
	return nil
}

// Execute routes qry to the handler registered for its concrete type and
// returns that handler's result channel unchanged. When no handler is
// registered the returned channel already carries a *HandlerNotFoundError.
func (b *QueryBus) Execute(ctx context.Context, qry Query) <-chan Result {
	if qry == nil {
		b.logger.Warn("no query handler", "type", "")
		return failed(&HandlerNotFoundError{})
	}

	name := TypeNameOf(b.naming, qry)
	handler, ok := b.registry.lookup(name)
	if !ok {
		b.logger.Warn("no query handler",
			"type", name, "id", qry.EnvelopeID())
		return failed(&HandlerNotFoundError{EnvelopeType: name})
	}

	b.logger.Debug("dispatching query",
		"type", name, "id", qry.EnvelopeID())

	if len(b.middleware) == 0 {
		return handler.Handle(ctx, qry)
	}
	handle := applyMiddleware(func(ctx context.Context, env Envelope) <-chan Result {
		return handler.Handle(ctx, env.(Query))
	}, b.middleware...)
	return handle(ctx, qry)
}

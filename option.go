package dispatch

// Option configures a CommandBus or QueryBus.
type Option func(*config)

type config struct {
	naming     NamingStrategy
	middleware []MiddlewareFunc
	logger     Logger
}

func parseOptions(opts []Option) config {
	c := config{
		naming: ExactNaming,
		logger: NopLogger,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithNaming overrides the strategy used to derive envelope type descriptors.
// Handlers registered on the bus must be built with the same strategy.
func WithNaming(naming NamingStrategy) Option {
	return func(c *config) {
		c.naming = naming
	}
}

// WithMiddleware appends middleware applied around handler invocation,
// outermost first. A bus with no middleware forwards handler results
// verbatim.
func WithMiddleware(middleware ...MiddlewareFunc) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithLogger sets the logger used for registration and dispatch events.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

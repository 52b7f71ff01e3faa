// Package middleware provides bus middleware for cross-cutting dispatch
// concerns. Middleware wraps handler invocation only; routing misses never
// pass through it.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/fxsml/dispatch"
)

// LogLevel represents the severity level for logging messages.
type LogLevel string

const (
	// LogLevelDebug is used for detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is used for general information messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is used for warning conditions.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is used for error conditions.
	LogLevelError LogLevel = "error"
)

// LoggerConfig holds configuration for the logger middleware.
type LoggerConfig struct {
	// Args are additional arguments to include in all log messages.
	Args []any

	// LevelSuccess is the log level used for successful dispatch.
	LevelSuccess LogLevel
	// LevelFailure is the log level used when dispatch fails.
	LevelFailure LogLevel

	// MessageSuccess is the message logged on successful dispatch.
	// Defaults to "DISPATCH: Success" if not set.
	MessageSuccess string
	// MessageFailure is the message logged when dispatch fails.
	// Defaults to "DISPATCH: Failure" if not set.
	MessageFailure string
}

func parseLogLevel(level LogLevel) LogLevel {
	return LogLevel(strings.ToLower(string(level)))
}

func (c *LoggerConfig) parse() {
	c.LevelSuccess = parseLogLevel(c.LevelSuccess)
	if c.LevelSuccess == "" {
		c.LevelSuccess = LogLevelDebug
	}
	c.LevelFailure = parseLogLevel(c.LevelFailure)
	if c.LevelFailure == "" {
		c.LevelFailure = LogLevelError
	}
	if c.MessageSuccess == "" {
		c.MessageSuccess = "DISPATCH: Success"
	}
	if c.MessageFailure == "" {
		c.MessageFailure = "DISPATCH: Failure"
	}
}

func (c *LoggerConfig) logFunc(level LogLevel, log dispatch.Logger) func(msg string, args ...any) {
	switch level {
	case LogLevelDebug:
		return log.Debug
	case LogLevelWarn:
		return log.Warn
	case LogLevelError:
		return log.Error
	default:
		return log.Info
	}
}

// UseLogger creates middleware that logs the outcome of each dispatch,
// including envelope id, elapsed time, and the error on failure.
// The result is forwarded unchanged.
func UseLogger(log dispatch.Logger, config LoggerConfig) dispatch.MiddlewareFunc {
	config.parse()
	logSuccess := config.logFunc(config.LevelSuccess, log)
	logFailure := config.logFunc(config.LevelFailure, log)

	return func(next dispatch.HandleFunc) dispatch.HandleFunc {
		return func(ctx context.Context, env dispatch.Envelope) <-chan dispatch.Result {
			start := time.Now()
			results := next(ctx, env)

			out := make(chan dispatch.Result, 1)
			go func() {
				defer close(out)
				for res := range results {
					args := append([]any{
						"id", env.EnvelopeID(),
						"elapsed", time.Since(start),
					}, config.Args...)
					if res.Err != nil {
						logFailure(config.MessageFailure, append(args, "error", res.Err)...)
					} else {
						logSuccess(config.MessageSuccess, args...)
					}
					out <- res
				}
			}()
			return out
		}
	}
}

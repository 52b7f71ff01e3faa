package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ce "github.com/cloudevents/sdk-go/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fxsml/dispatch"
	"github.com/fxsml/dispatch/cloudevents"
)

// ErrorHandler processes bridge errors: undecodable queue entries and
// failed command executions.
type ErrorHandler func(err error)

// Config configures the queue shared by Publisher and Bridge.
type Config struct {
	// Queue is the Redis list key commands travel over.
	// Default: "dispatch:commands".
	Queue string

	// PollInterval is how long the bridge waits after draining the queue
	// before polling again. Default: 100 milliseconds.
	PollInterval time.Duration

	// ErrorHandler receives decode and execution failures.
	// Default: logs via slog.
	ErrorHandler ErrorHandler

	// Logger logs bridge lifecycle events. Default: dispatch.NopLogger.
	Logger dispatch.Logger
}

func (c Config) defaults() Config {
	cfg := c
	if cfg.Queue == "" {
		cfg.Queue = "dispatch:commands"
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(err error) {
			slog.Error("redisbus bridge error", "error", err)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = dispatch.NopLogger
	}
	return cfg
}

// Bridge consumes queued commands and executes them on a local CommandBus.
type Bridge struct {
	client redis.Cmdable
	bus    *dispatch.CommandBus
	codec  *cloudevents.Codec
	types  cloudevents.TypeRegistry
	cfg    Config
}

// NewBridge creates a bridge. The registry resolves queued event types to
// concrete command values; types missing from it surface through the error
// handler, never as a panic.
func NewBridge(
	client redis.Cmdable,
	bus *dispatch.CommandBus,
	codec *cloudevents.Codec,
	types cloudevents.TypeRegistry,
	cfg Config,
) *Bridge {
	return &Bridge{
		client: client,
		bus:    bus,
		codec:  codec,
		types:  types,
		cfg:    cfg.defaults(),
	}
}

// Run consumes the queue until ctx is done and returns ctx's error.
// Each entry is decoded, executed on the bus, and awaited, so handler
// failures reach the error handler before the next entry is popped.
func (b *Bridge) Run(ctx context.Context) error {
	b.cfg.Logger.Info("redisbus bridge started", "queue", b.cfg.Queue)
	defer b.cfg.Logger.Info("redisbus bridge stopped", "queue", b.cfg.Queue)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := b.client.LPop(ctx, b.cfg.Queue).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if !sleep(ctx, b.cfg.PollInterval) {
				return ctx.Err()
			}
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.cfg.ErrorHandler(fmt.Errorf("pop from %q: %w", b.cfg.Queue, err))
			if !sleep(ctx, b.cfg.PollInterval) {
				return ctx.Err()
			}
		default:
			b.process(ctx, data)
		}
	}
}

func (b *Bridge) process(ctx context.Context, data []byte) {
	var e ce.Event
	if err := json.Unmarshal(data, &e); err != nil {
		b.cfg.ErrorHandler(fmt.Errorf("unmarshal event: %w", err))
		return
	}

	cmd, err := b.codec.DecodeCommand(&e, b.types)
	if err != nil {
		b.cfg.ErrorHandler(fmt.Errorf("decode command: %w", err))
		return
	}

	b.cfg.Logger.Debug("executing remote command",
		"type", e.Type(), "id", cmd.EnvelopeID())

	if _, err := dispatch.Await[any](ctx, b.bus.Execute(ctx, cmd)); err != nil {
		b.cfg.ErrorHandler(fmt.Errorf("execute %q: %w", e.Type(), err))
	}
}

// sleep waits for d or until ctx is done, reporting whether to continue.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

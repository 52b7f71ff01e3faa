// Package redisbus forwards commands between processes over a Redis list.
// Commands are encoded as structured-mode CloudEvents; a Publisher pushes
// them onto a queue and a Bridge pops them and executes them on a local
// CommandBus. Delivery is fire-and-forget: results stay on the consuming
// side and failures are reported through the bridge's error handler.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fxsml/dispatch"
	"github.com/fxsml/dispatch/cloudevents"
)

// Publisher pushes commands onto a Redis queue for remote execution.
type Publisher struct {
	client redis.Cmdable
	codec  *cloudevents.Codec
	queue  string
}

// NewPublisher creates a publisher. Only Config.Queue is used; the remaining
// fields configure the consuming Bridge.
func NewPublisher(client redis.Cmdable, codec *cloudevents.Codec, cfg Config) *Publisher {
	cfg = cfg.defaults()
	return &Publisher{
		client: client,
		codec:  codec,
		queue:  cfg.Queue,
	}
}

// Publish encodes cmd as a CloudEvent and appends it to the queue.
// The command's identity and principal travel in the event attributes and
// survive the round trip unchanged.
func (p *Publisher) Publish(ctx context.Context, cmd dispatch.Command) error {
	e, err := p.codec.EncodeCommand(cmd)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("push to %q: %w", p.queue, err)
	}
	return nil
}

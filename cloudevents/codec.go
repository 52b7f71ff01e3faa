// Package cloudevents converts dispatch envelopes to and from CloudEvents
// for cross-process transport. Envelope identity travels in the event
// attributes; only business fields travel in the event data.
package cloudevents

import (
	"fmt"
	"time"

	ce "github.com/cloudevents/sdk-go/v2"

	"github.com/fxsml/dispatch"
)

// ExtPrincipal is the CloudEvents extension attribute carrying the command's
// originating principal. Omitted for system-issued commands.
const ExtPrincipal = "principal"

// Codec encodes and decodes envelopes as CloudEvents.
type Codec struct {
	source    string
	naming    dispatch.NamingStrategy
	marshaler Marshaler
}

// NewCodec creates a codec. The source becomes the CloudEvents source
// attribute of encoded envelopes. Pass nil naming for ExactNaming and nil
// marshaler for JSON.
func NewCodec(source string, naming dispatch.NamingStrategy, marshaler Marshaler) *Codec {
	if naming == nil {
		naming = dispatch.ExactNaming
	}
	if marshaler == nil {
		marshaler = NewJSONMarshaler()
	}
	return &Codec{
		source:    source,
		naming:    naming,
		marshaler: marshaler,
	}
}

// EncodeCommand converts cmd into a CloudEvent. The envelope id, timestamp,
// and principal map onto the id, time, and principal extension attributes.
func (c *Codec) EncodeCommand(cmd dispatch.Command) (*ce.Event, error) {
	e, err := c.encode(cmd, dispatch.TypeNameOf(c.naming, cmd))
	if err != nil {
		return nil, err
	}
	if p := cmd.Principal(); p != "" {
		e.SetExtension(ExtPrincipal, p)
	}
	return e, nil
}

// EncodeQuery converts qry into a CloudEvent.
func (c *Codec) EncodeQuery(qry dispatch.Query) (*ce.Event, error) {
	return c.encode(qry, dispatch.TypeNameOf(c.naming, qry))
}

func (c *Codec) encode(env dispatch.Envelope, envelopeType string) (*ce.Event, error) {
	if env == nil {
		return nil, fmt.Errorf("nil envelope")
	}

	data, err := c.marshaler.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %q: %w", envelopeType, err)
	}

	e := ce.NewEvent()
	e.SetID(env.EnvelopeID())
	e.SetSource(c.source)
	e.SetType(envelopeType)
	e.SetTime(env.IssuedAt())
	if err := e.SetData(c.marshaler.DataContentType(), data); err != nil {
		return nil, fmt.Errorf("set data for %q: %w", envelopeType, err)
	}
	return &e, nil
}

type commandRehydrater interface {
	Rehydrate(id string, issuedAt time.Time, principal string)
}

type queryRehydrater interface {
	Rehydrate(id string, issuedAt time.Time)
}

// DecodeCommand converts a CloudEvent back into a concrete command.
// The event type is resolved through types; unknown types are an error.
// Identity attributes are restored onto the embedded envelope.
func (c *Codec) DecodeCommand(e *ce.Event, types TypeRegistry) (dispatch.Command, error) {
	v, err := c.decode(e, types)
	if err != nil {
		return nil, err
	}

	var principal string
	if p, ok := e.Extensions()[ExtPrincipal].(string); ok {
		principal = p
	}
	if r, ok := v.(commandRehydrater); ok {
		r.Rehydrate(e.ID(), e.Time(), principal)
	}

	cmd, ok := v.(dispatch.Command)
	if !ok {
		return nil, fmt.Errorf("decoded %q is %T, not a command", e.Type(), v)
	}
	return cmd, nil
}

// DecodeQuery converts a CloudEvent back into a concrete query.
func (c *Codec) DecodeQuery(e *ce.Event, types TypeRegistry) (dispatch.Query, error) {
	v, err := c.decode(e, types)
	if err != nil {
		return nil, err
	}

	if r, ok := v.(queryRehydrater); ok {
		r.Rehydrate(e.ID(), e.Time())
	}

	qry, ok := v.(dispatch.Query)
	if !ok {
		return nil, fmt.Errorf("decoded %q is %T, not a query", e.Type(), v)
	}
	return qry, nil
}

func (c *Codec) decode(e *ce.Event, types TypeRegistry) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil event")
	}

	v := types.New(e.Type())
	if v == nil {
		return nil, fmt.Errorf("unknown envelope type %q", e.Type())
	}
	if err := c.marshaler.Unmarshal(e.Data(), v); err != nil {
		return nil, fmt.Errorf("unmarshal %q: %w", e.Type(), err)
	}
	return v, nil
}

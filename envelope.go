package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the view of a dispatched value shared by commands and queries.
// An envelope's identity and timestamp are assigned exactly once, when the
// embeddable base is constructed, and are immutable afterwards.
type Envelope interface {
	// EnvelopeID returns the unique identifier assigned at construction.
	EnvelopeID() string
	// IssuedAt returns the creation timestamp assigned at construction.
	IssuedAt() time.Time
}

// Command is a write-intent envelope. It additionally carries the principal
// that issued it; system-issued commands report an empty principal.
type Command interface {
	Envelope
	// Principal returns the identifier of the originating principal,
	// or "" for system-issued commands.
	Principal() string
}

// Query is a read-intent envelope. Queries are anonymous with respect to the
// bus: authorization, if any, is the caller's concern before Execute.
type Query interface {
	Envelope
}

// CommandEnvelope is the embeddable base for concrete command types.
// Construct it with NewCommandEnvelope; the zero value carries no identity
// and is rejected nowhere, but produces an empty EnvelopeID.
type CommandEnvelope struct {
	id        string
	issuedAt  time.Time
	principal string
}

// NewCommandEnvelope creates a command base with a fresh UUID identifier and
// the current time. Pass "" as principal for system-issued commands.
func NewCommandEnvelope(principal string) CommandEnvelope {
	return CommandEnvelope{
		id:        uuid.NewString(),
		issuedAt:  time.Now(),
		principal: principal,
	}
}

// EnvelopeID returns the identifier assigned at construction.
func (e CommandEnvelope) EnvelopeID() string { return e.id }

// IssuedAt returns the timestamp assigned at construction.
func (e CommandEnvelope) IssuedAt() time.Time { return e.issuedAt }

// Principal returns the originating principal, or "" for system commands.
func (e CommandEnvelope) Principal() string { return e.principal }

// Rehydrate restores envelope identity received from a remote transport.
// It applies only to a zero envelope; an envelope that already carries an
// identity is left unchanged, preserving the assign-once invariant.
func (e *CommandEnvelope) Rehydrate(id string, issuedAt time.Time, principal string) {
	if e.id != "" {
		return
	}
	e.id = id
	e.issuedAt = issuedAt
	e.principal = principal
}

// QueryEnvelope is the embeddable base for concrete query types.
// Construct it with NewQueryEnvelope.
type QueryEnvelope struct {
	id       string
	issuedAt time.Time
}

// NewQueryEnvelope creates a query base with a fresh UUID identifier and
// the current time.
func NewQueryEnvelope() QueryEnvelope {
	return QueryEnvelope{
		id:       uuid.NewString(),
		issuedAt: time.Now(),
	}
}

// EnvelopeID returns the identifier assigned at construction.
func (e QueryEnvelope) EnvelopeID() string { return e.id }

// IssuedAt returns the timestamp assigned at construction.
func (e QueryEnvelope) IssuedAt() time.Time { return e.issuedAt }

// Rehydrate restores envelope identity received from a remote transport.
// It applies only to a zero envelope.
func (e *QueryEnvelope) Rehydrate(id string, issuedAt time.Time) {
	if e.id != "" {
		return
	}
	e.id = id
	e.issuedAt = issuedAt
}

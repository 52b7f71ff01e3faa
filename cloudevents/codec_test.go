package cloudevents

import (
	"testing"
	"time"

	"github.com/fxsml/dispatch"
)

type CreateUser struct {
	dispatch.CommandEnvelope
	Name  string
	Email string
}

type GetUser struct {
	dispatch.QueryEnvelope
	ID string
}

func TestCodec_EncodeCommand(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", nil, nil)

	cmd := CreateUser{
		CommandEnvelope: dispatch.NewCommandEnvelope("admin-7"),
		Name:            "Ada",
		Email:           "ada@example.com",
	}
	e, err := codec.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.ID() != cmd.EnvelopeID() {
		t.Errorf("expected event ID %q, got %q", cmd.EnvelopeID(), e.ID())
	}
	if e.Type() != "CreateUser" {
		t.Errorf("expected type %q, got %q", "CreateUser", e.Type())
	}
	if e.Source() != "https://accounts.example.com" {
		t.Errorf("unexpected source %q", e.Source())
	}
	if p, ok := e.Extensions()[ExtPrincipal].(string); !ok || p != "admin-7" {
		t.Errorf("expected principal extension %q, got %v", "admin-7", e.Extensions()[ExtPrincipal])
	}
	if e.DataContentType() != "application/json" {
		t.Errorf("expected JSON content type, got %q", e.DataContentType())
	}
}

func TestCodec_EncodeCommand_SystemPrincipalOmitted(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", nil, nil)

	cmd := CreateUser{CommandEnvelope: dispatch.NewCommandEnvelope(""), Name: "Ada"}
	e, err := codec.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := e.Extensions()[ExtPrincipal]; ok {
		t.Error("expected principal extension omitted for system commands")
	}
}

func TestCodec_CommandRoundTrip(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", nil, nil)
	types := FactoryMap{
		"CreateUser": func() any { return &CreateUser{} },
	}

	original := CreateUser{
		CommandEnvelope: dispatch.NewCommandEnvelope("admin-7"),
		Name:            "Ada",
		Email:           "ada@example.com",
	}
	e, err := codec.EncodeCommand(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := codec.DecodeCommand(e, types)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd, ok := decoded.(*CreateUser)
	if !ok {
		t.Fatalf("expected *CreateUser, got %T", decoded)
	}
	if cmd.Name != "Ada" || cmd.Email != "ada@example.com" {
		t.Errorf("business fields lost: %+v", cmd)
	}
	if cmd.EnvelopeID() != original.EnvelopeID() {
		t.Errorf("expected ID %q, got %q", original.EnvelopeID(), cmd.EnvelopeID())
	}
	if cmd.Principal() != "admin-7" {
		t.Errorf("expected principal %q, got %q", "admin-7", cmd.Principal())
	}
	if !cmd.IssuedAt().Truncate(time.Second).Equal(original.IssuedAt().Truncate(time.Second)) {
		t.Errorf("expected timestamp near %v, got %v", original.IssuedAt(), cmd.IssuedAt())
	}
}

func TestCodec_QueryRoundTrip(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", nil, nil)
	types := FactoryMap{
		"GetUser": func() any { return &GetUser{} },
	}

	original := GetUser{QueryEnvelope: dispatch.NewQueryEnvelope(), ID: "user-1"}
	e, err := codec.EncodeQuery(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := codec.DecodeQuery(e, types)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qry, ok := decoded.(*GetUser)
	if !ok {
		t.Fatalf("expected *GetUser, got %T", decoded)
	}
	if qry.ID != "user-1" {
		t.Errorf("business fields lost: %+v", qry)
	}
	if qry.EnvelopeID() != original.EnvelopeID() {
		t.Errorf("expected ID %q, got %q", original.EnvelopeID(), qry.EnvelopeID())
	}
}

func TestCodec_DecodeUnknownType(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", nil, nil)

	cmd := CreateUser{CommandEnvelope: dispatch.NewCommandEnvelope("")}
	e, err := codec.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := codec.DecodeCommand(e, FactoryMap{}); err == nil {
		t.Fatal("expected error for unknown envelope type")
	}
}

func TestCodec_KebabNaming(t *testing.T) {
	codec := NewCodec("https://accounts.example.com", dispatch.KebabNaming, nil)

	cmd := CreateUser{CommandEnvelope: dispatch.NewCommandEnvelope("")}
	e, err := codec.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Type() != "create.user" {
		t.Errorf("expected type %q, got %q", "create.user", e.Type())
	}

	types := FactoryMap{
		"create.user": func() any { return &CreateUser{} },
	}
	if _, err := codec.DecodeCommand(e, types); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFactoryMap_UnknownTypeReturnsNil(t *testing.T) {
	types := FactoryMap{"CreateUser": func() any { return &CreateUser{} }}

	if v := types.New("DeleteUser"); v != nil {
		t.Errorf("expected nil for unknown type, got %T", v)
	}
}

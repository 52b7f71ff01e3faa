package dispatch

import (
	"reflect"
	"testing"
)

type CreateUserCommand struct{}

func TestExactNaming(t *testing.T) {
	got := ExactNaming.TypeName(reflect.TypeOf(CreateUserCommand{}))
	if got != "CreateUserCommand" {
		t.Errorf("expected %q, got %q", "CreateUserCommand", got)
	}
}

func TestKebabNaming(t *testing.T) {
	got := KebabNaming.TypeName(reflect.TypeOf(CreateUserCommand{}))
	if got != "create.user.command" {
		t.Errorf("expected %q, got %q", "create.user.command", got)
	}
}

func TestSnakeNaming(t *testing.T) {
	got := SnakeNaming.TypeName(reflect.TypeOf(CreateUserCommand{}))
	if got != "create_user_command" {
		t.Errorf("expected %q, got %q", "create_user_command", got)
	}
}

func TestTypeNameOf_DereferencesPointers(t *testing.T) {
	byValue := TypeNameOf(ExactNaming, CreateUserCommand{})
	byPointer := TypeNameOf(ExactNaming, &CreateUserCommand{})

	if byValue != byPointer {
		t.Errorf("value and pointer descriptors differ: %q vs %q", byValue, byPointer)
	}
}

func TestTypeNameOf_Nil(t *testing.T) {
	if got := TypeNameOf(ExactNaming, nil); got != "" {
		t.Errorf("expected empty descriptor for nil, got %q", got)
	}
}

func TestTypeNameFor_MatchesTypeNameOf(t *testing.T) {
	fromGeneric := typeNameFor[CreateUserCommand](ExactNaming)
	fromValue := TypeNameOf(ExactNaming, CreateUserCommand{})

	if fromGeneric != fromValue {
		t.Errorf("generic and value descriptors differ: %q vs %q", fromGeneric, fromValue)
	}
}

func TestSplitPascalCase(t *testing.T) {
	cases := []struct {
		in   string
		sep  string
		want string
	}{
		{"OrderCreated", ".", "order.created"},
		{"OrderCreated", "_", "order_created"},
		{"A", ".", "a"},
		{"", ".", ""},
	}
	for _, c := range cases {
		if got := splitPascalCase(c.in, c.sep); got != c.want {
			t.Errorf("splitPascalCase(%q, %q) = %q, want %q", c.in, c.sep, got, c.want)
		}
	}
}

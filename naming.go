package dispatch

import (
	"reflect"
	"strings"
	"unicode"
)

// NamingStrategy derives envelope type descriptors from Go types.
// The same strategy must be used for a bus and for the handlers registered on
// it, otherwise registration keys and dispatch keys diverge.
type NamingStrategy interface {
	TypeName(t reflect.Type) string
}

// ExactNaming uses the bare Go type name.
// Example: CreateUserCommand → "CreateUserCommand"
var ExactNaming NamingStrategy = exactNaming{}

// KebabNaming converts PascalCase to dot-separated lowercase.
// Example: CreateUserCommand → "create.user.command"
var KebabNaming NamingStrategy = kebabNaming{}

// SnakeNaming converts PascalCase to underscore-separated lowercase.
// Example: CreateUserCommand → "create_user_command"
var SnakeNaming NamingStrategy = snakeNaming{}

type exactNaming struct{}

func (exactNaming) TypeName(t reflect.Type) string {
	return t.Name()
}

type kebabNaming struct{}

func (kebabNaming) TypeName(t reflect.Type) string {
	return splitPascalCase(t.Name(), ".")
}

type snakeNaming struct{}

func (snakeNaming) TypeName(t reflect.Type) string {
	return splitPascalCase(t.Name(), "_")
}

// TypeNameOf returns the descriptor naming derives for v's concrete type.
// Pointer types are dereferenced so a value and a pointer to it share one
// descriptor.
func TypeNameOf(naming NamingStrategy, v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return naming.TypeName(t)
}

// typeNameFor derives the descriptor for the generic type T without needing
// a value. Used by handler constructors for registration keying.
func typeNameFor[T any](naming NamingStrategy) string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return naming.TypeName(t)
}

// splitPascalCase splits a PascalCase string into lowercase words joined by sep.
func splitPascalCase(s string, sep string) string {
	if s == "" {
		return ""
	}

	var words []string
	var current strings.Builder

	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, strings.ToLower(current.String()))
	}

	return strings.Join(words, sep)
}

package dispatch

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := newRegistry[string]()

	if err := r.register("CreateUser", "handler-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h, ok := r.lookup("CreateUser")
	if !ok {
		t.Fatal("expected handler to be found")
	}
	if h != "handler-1" {
		t.Errorf("expected %q, got %q", "handler-1", h)
	}
}

func TestRegistry_LookupUnknownType(t *testing.T) {
	r := newRegistry[string]()

	if _, ok := r.lookup("DeleteUser"); ok {
		t.Fatal("expected lookup miss for unregistered type")
	}
}

func TestRegistry_DuplicateRetainsFirst(t *testing.T) {
	r := newRegistry[string]()

	if err := r.register("CreateUser", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.register("CreateUser", "second")
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	var dup *DuplicateHandlerError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateHandlerError, got %T", err)
	}
	if dup.EnvelopeType != "CreateUser" {
		t.Errorf("expected envelope type %q, got %q", "CreateUser", dup.EnvelopeType)
	}
	if !errors.Is(err, ErrRegistration) {
		t.Error("expected error to unwrap to ErrRegistration")
	}

	h, _ := r.lookup("CreateUser")
	if h != "first" {
		t.Errorf("expected first registration retained, got %q", h)
	}
}

func TestRegistry_ConcurrentRegistrationSingleWinner(t *testing.T) {
	const attempts = 50

	r := newRegistry[int]()

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.register("CreateUser", i)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly 1 successful registration, got %d", succeeded)
	}

	if _, ok := r.lookup("CreateUser"); !ok {
		t.Error("expected a handler to be registered")
	}
}

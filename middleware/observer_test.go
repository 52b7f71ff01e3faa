package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fxsml/dispatch"
)

func TestUseObserver_ReportsOutcome(t *testing.T) {
	var observed []dispatch.Result
	mw := UseObserver(func(env dispatch.Envelope, res dispatch.Result, elapsed time.Duration) {
		observed = append(observed, res)
	})

	handle := mw(success("user-1"))
	res := <-handle(context.Background(), testCommand{CommandEnvelope: dispatch.NewCommandEnvelope("")})

	if res.Value != "user-1" {
		t.Errorf("middleware altered result: got %v", res.Value)
	}
	if len(observed) != 1 || observed[0].Value != "user-1" {
		t.Errorf("expected one observed success, got %v", observed)
	}
}

func TestUseObserver_ReportsFailure(t *testing.T) {
	cause := errors.New("boom")

	var observed []dispatch.Result
	mw := UseObserver(func(env dispatch.Envelope, res dispatch.Result, elapsed time.Duration) {
		observed = append(observed, res)
	})

	handle := mw(failure(cause))
	res := <-handle(context.Background(), testCommand{CommandEnvelope: dispatch.NewCommandEnvelope("")})

	if res.Err != cause {
		t.Errorf("middleware altered error: got %v", res.Err)
	}
	if len(observed) != 1 || !errors.Is(observed[0].Err, cause) {
		t.Errorf("expected observed failure, got %v", observed)
	}
}

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fxsml/dispatch"
)

type testCommand struct {
	dispatch.CommandEnvelope
}

// recordingLogger captures log calls by level.
type recordingLogger struct {
	mu      sync.Mutex
	entries map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: make(map[string][]string)}
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[level] = append(l.entries[level], msg)
}

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[level]
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg) }

func success(v any) dispatch.HandleFunc {
	return func(ctx context.Context, env dispatch.Envelope) <-chan dispatch.Result {
		out := make(chan dispatch.Result, 1)
		out <- dispatch.Result{Value: v}
		close(out)
		return out
	}
}

func failure(err error) dispatch.HandleFunc {
	return func(ctx context.Context, env dispatch.Envelope) <-chan dispatch.Result {
		out := make(chan dispatch.Result, 1)
		out <- dispatch.Result{Err: err}
		close(out)
		return out
	}
}

func TestUseLogger_LogsSuccessAndForwardsResult(t *testing.T) {
	log := newRecordingLogger()
	mw := UseLogger(log, LoggerConfig{})

	handle := mw(success("user-1"))
	res := <-handle(context.Background(), testCommand{CommandEnvelope: dispatch.NewCommandEnvelope("")})

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Value != "user-1" {
		t.Errorf("middleware altered result: got %v", res.Value)
	}
	if got := log.messages("debug"); len(got) != 1 || got[0] != "DISPATCH: Success" {
		t.Errorf("expected one debug success entry, got %v", got)
	}
}

func TestUseLogger_LogsFailureAtConfiguredLevel(t *testing.T) {
	log := newRecordingLogger()
	mw := UseLogger(log, LoggerConfig{
		LevelFailure:   LogLevelWarn,
		MessageFailure: "command failed",
	})

	cause := errors.New("boom")
	handle := mw(failure(cause))
	res := <-handle(context.Background(), testCommand{CommandEnvelope: dispatch.NewCommandEnvelope("")})

	if res.Err != cause {
		t.Errorf("middleware altered error: got %v", res.Err)
	}
	if got := log.messages("warn"); len(got) != 1 || got[0] != "command failed" {
		t.Errorf("expected one warn failure entry, got %v", got)
	}
}

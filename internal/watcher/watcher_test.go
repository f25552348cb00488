package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap/zaptest"
)

func TestIsTranscriptFile(t *testing.T) {
	assert.Equal(t, true, IsTranscriptFile("/tmp/standup.txt"))
	assert.Equal(t, true, IsTranscriptFile("notes.MD"))
	assert.Equal(t, false, IsTranscriptFile("standup.insights.json"))
	assert.Equal(t, false, IsTranscriptFile("recording.mp4"))
}

func TestWatcher_HandlesNewTranscripts(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	seen := make(map[string]bool)
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		seen[filepath.Base(path)] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, zaptest.NewLogger(t), 1, WithSettleDelay(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Let the loop start before creating files
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ignored.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "standup.txt"), []byte("Alice: hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, true, seen["standup.txt"])
	assert.Equal(t, false, seen["ignored.json"])
}

// runUntilHandlerStarts starts a watcher with handler, drops one transcript,
// waits for the handler to begin, then cancels and returns Start's result.
func runUntilHandlerStarts(t *testing.T, handler EventHandler, started <-chan struct{}, opts ...Option) error {
	t.Helper()
	dir := t.TempDir()

	opts = append([]Option{WithSettleDelay(10 * time.Millisecond)}, opts...)
	w, err := New(dir, handler, zaptest.NewLogger(t), 1, opts...)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "standup.txt"), []byte("Alice: hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
	cancel()

	select {
	case err := <-errCh:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not stop")
		return nil
	}
}

func TestWatcher_ShutdownLetsInFlightHandlerFinish(t *testing.T) {
	started := make(chan struct{})
	outcome := make(chan error, 1)
	handler := func(ctx context.Context, path string) error {
		close(started)
		select {
		case <-time.After(300 * time.Millisecond):
			outcome <- nil
		case <-ctx.Done():
			outcome <- ctx.Err()
		}
		return nil
	}

	err := runUntilHandlerStarts(t, handler, started)
	assert.Equal(t, context.Canceled, err)

	// Start returns only after the handler is done
	select {
	case got := <-outcome:
		assert.Equal(t, nil, got)
	default:
		t.Fatal("Start returned before the in-flight handler finished")
	}
}

func TestWatcher_DrainTimeoutCancelsHandler(t *testing.T) {
	started := make(chan struct{})
	outcome := make(chan error, 1)
	handler := func(ctx context.Context, path string) error {
		close(started)
		select {
		case <-time.After(5 * time.Second):
			outcome <- nil
		case <-ctx.Done():
			outcome <- ctx.Err()
		}
		return nil
	}

	err := runUntilHandlerStarts(t, handler, started, WithDrainTimeout(50*time.Millisecond))
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, <-outcome)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, zaptest.NewLogger(t), 0)
	assert.NotEqual(t, nil, err)
}

// Package watcher runs a handler for every transcript file dropped into a directory.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// SupportedExtensions lists the transcript file types the watcher picks up
var SupportedExtensions = []string{".txt", ".md", ".transcript"}

// EventHandler processes one newly created transcript file
type EventHandler func(ctx context.Context, path string) error

// Watcher monitors a directory until its context is done
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        *zap.Logger
	watcher       *fsnotify.Watcher
	settleDelay   time.Duration
	drainTimeout  time.Duration
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start blocks handling Create events until ctx is done, then waits for
// in-flight handlers to finish. Handlers run on a context detached from ctx,
// which is cancelled only if they outlast the drain timeout.
func (w *implWatcher) Start(ctx context.Context) error {
	handlerCtx, cancelHandlers := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelHandlers()

	w.logger.Info("👀 Watching for transcripts",
		zap.String("dir", w.inputDir),
		zap.Int("max_concurrent", w.maxConcurrent),
		zap.Strings("extensions", SupportedExtensions),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Waiting for in-flight transcripts to finish", zap.Duration("drain_timeout", w.drainTimeout))
			w.drain(cancelHandlers)
			w.logger.Info("🛑 Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsTranscriptFile(event.Name) {
				w.logger.Debug("Ignoring file", zap.String("path", event.Name))
				continue
			}

			w.logger.Info("📄 New transcript detected", zap.String("path", event.Name))

			// Give the writer a moment to finish the file
			select {
			case <-time.After(w.settleDelay):
			case <-ctx.Done():
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(handlerCtx, path); err != nil {
						w.logger.Error("❌ Failed to process transcript", zap.String("path", path), zap.Error(err))
					}
				}(event.Name)
			case <-ctx.Done():
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// drain waits for in-flight handlers, cancelling them once the drain timeout passes
func (w *implWatcher) drain(cancelHandlers context.CancelFunc) {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(w.drainTimeout):
		w.logger.Warn("⏱️ Drain timeout reached, cancelling in-flight transcripts")
		cancelHandlers()
	}
	<-done
}

// Stop closes the underlying file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsTranscriptFile reports whether path has a supported transcript extension
func IsTranscriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

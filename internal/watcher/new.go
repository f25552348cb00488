package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	defaultMaxConcurrent = 2
	defaultSettleDelay   = 500 * time.Millisecond
	defaultDrainTimeout  = 30 * time.Second
)

// Option customizes a Watcher
type Option func(*implWatcher)

// WithSettleDelay sets how long to wait after a file appears before handling it
func WithSettleDelay(d time.Duration) Option {
	return func(w *implWatcher) {
		w.settleDelay = d
	}
}

// WithDrainTimeout bounds how long shutdown waits for in-flight handlers
// before cancelling them
func WithDrainTimeout(d time.Duration) Option {
	return func(w *implWatcher) {
		w.drainTimeout = d
	}
}

// New watches inputDir and calls handler for each new transcript, at most
// maxConcurrent at a time.
func New(inputDir string, handler EventHandler, logger *zap.Logger, maxConcurrent int, opts ...Option) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	w := &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        logger,
		watcher:       fw,
		settleDelay:   defaultSettleDelay,
		drainTimeout:  defaultDrainTimeout,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/pkg/semaphore"
)

const defaultSettle = 500 * time.Millisecond

// Option customises a watcher
type Option func(*implWatcher)

// WithClock replaces the real clock
func WithClock(c clockwork.Clock) Option {
	return func(w *implWatcher) {
		w.clock = c
	}
}

// WithSettle sets how long a new file is left alone before it is read
func WithSettle(d time.Duration) Option {
	return func(w *implWatcher) {
		w.settle = d
	}
}

// New creates a new Watcher instance with concurrency control
func New(inboxDir string, handler EventHandler, log logger.Logger, maxConcurrent int, opts ...Option) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	slots, err := semaphore.New(maxConcurrent, maxConcurrent)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("create semaphore: %w", err)
	}

	w := &implWatcher{
		inboxDir:      inboxDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		slots:         slots,
		clock:         clockwork.NewRealClock(),
		settle:        defaultSettle,
		inFlight:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

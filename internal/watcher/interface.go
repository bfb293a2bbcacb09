package watcher

import "context"

// Watcher monitors the scenario inbox
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one scenario file
type EventHandler func(ctx context.Context, filePath string) error

package watcher

import "context"

// Watcher defines the interface for inbox monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// Filter decides whether a created file should be handled
type Filter func(filePath string) bool

package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

// defaultSettleDelay gives the writer time to finish before a new file is handled
const defaultSettleDelay = 500 * time.Millisecond

// New creates a new Watcher instance with concurrency control
func New(inboxDir string, handler EventHandler, filter Filter, log logger.Logger, maxConcurrent int) (Watcher, error) {
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

	return &implWatcher{
		inboxDir:      inboxDir,
		handler:       handler,
		filter:        filter,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settleDelay:   defaultSettleDelay,
	}, nil
}

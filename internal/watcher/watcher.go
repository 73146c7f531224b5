package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	filter        Filter
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

// Start monitors the inbox and hands every new recording to the handler.
// It returns once ctx is done and all in-flight handlers have finished.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing uploads to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if w.filter != nil && !w.filter(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)
			time.Sleep(w.settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

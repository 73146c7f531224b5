package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

func TestWatcherHandlesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 4)

	handler := func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}
	filter := func(path string) bool { return strings.HasSuffix(path, ".wav") }

	w, err := New(dir, handler, filter, logger.NewWithOutput("error", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the event loop a moment to start selecting.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "meeting.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-handled:
		if name != "meeting.wav" {
			t.Errorf("handled %q, want meeting.wav", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for handler")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	select {
	case name := <-handled:
		t.Errorf("unexpected extra handler call for %q", name)
	default:
	}
}

func TestWatcherBoundsConcurrencyAndDrainsOnCancel(t *testing.T) {
	dir := t.TempDir()
	release := make(chan struct{})
	started := make(chan string, 4)
	var active, peak atomic.Int32

	handler := func(ctx context.Context, path string) error {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		started <- filepath.Base(path)
		<-release
		active.Add(-1)
		return nil
	}
	filter := func(path string) bool { return strings.HasSuffix(path, ".wav") }

	w, err := New(dir, handler, filter, logger.NewWithOutput("error", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "a.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for first handler")
	}

	if err := os.WriteFile(filepath.Join(dir, "b.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case name := <-started:
		t.Fatalf("handler for %q started while the slot was taken", name)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		t.Fatalf("Start() returned %v before the in-flight handler finished", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start() did not return after the handler was released")
	}

	if got := peak.Load(); got != 1 {
		t.Errorf("peak concurrency = %d, want 1", got)
	}
	if got := active.Load(); got != 0 {
		t.Errorf("active handlers after Start returned = %d, want 0", got)
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, nil, logger.NewWithOutput("error", io.Discard), 0)
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

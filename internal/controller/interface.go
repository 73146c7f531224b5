package controller

import (
	"context"
	"errors"
)

var (
	// ErrBusy is returned when an action is triggered while another one is still in flight.
	ErrBusy = errors.New("another action is in progress")
	// ErrNoFile is returned by RunFile when no file was selected.
	ErrNoFile = errors.New("no file selected")
)

// Status texts rendered while an action is in flight or once it settles.
const (
	StatusStarting   = "Starting…"
	StatusStopping   = "Stopping…"
	StatusProcessing = "Processing…"
	StatusUploading  = "Uploading…"
	StatusDone       = "Done"
	StatusSelectFile = "Please select a file first"
)

// Controller binds the user actions to backend calls and renders the outcome into a Display.
// Every action returns the same error it rendered, so callers can also react to it.
type Controller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Run(ctx context.Context) error
	RunFile(ctx context.Context, path string) error
	Busy() bool
}

// Display is the set of output regions a Controller writes to.
type Display interface {
	SetStatus(text string)
	SetTranscript(text string)
	SetSummary(text string)
}

package controller

import (
	"sync/atomic"

	"github.com/nguyentantai21042004/meeting-secretary/internal/backend"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

// Options tune which backend flow Run uses.
type Options struct {
	// Summarize makes Run call transcribe_and_summarize and fill the summary region.
	Summarize bool
}

type implController struct {
	client  backend.Client
	display Display
	logger  logger.Logger
	opts    Options
	busy    atomic.Bool
}

// New creates a Controller rendering into display
func New(client backend.Client, display Display, log logger.Logger, opts Options) Controller {
	return &implController{
		client:  client,
		display: display,
		logger:  log,
		opts:    opts,
	}
}

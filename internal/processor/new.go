package processor

import (
	"github.com/nguyentantai21042004/meeting-secretary/internal/backend"
	"github.com/nguyentantai21042004/meeting-secretary/internal/config"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
	"github.com/nguyentantai21042004/meeting-secretary/pkg/executor"
)

type implProcessor struct {
	cfg      *config.Config
	client   backend.Client
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, client backend.Client, exec executor.Executor, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		client:   client,
		executor: exec,
		logger:   log,
	}
}

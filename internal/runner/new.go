package runner

import (
	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/config"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/internal/report"
	"github.com/nguyentantai21042004/pump-station/pkg/executor"
)

type implRunner struct {
	cfg      *config.Config
	executor executor.Executor
	report   report.Writer
	clock    clockwork.Clock
	logger   logger.Logger
}

// New creates a new Runner instance
func New(cfg *config.Config, exec executor.Executor, rep report.Writer, clock clockwork.Clock, log logger.Logger) Runner {
	return &implRunner{
		cfg:      cfg,
		executor: exec,
		report:   rep,
		clock:    clock,
		logger:   log,
	}
}

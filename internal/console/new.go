package console

import (
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/internal/station"
)

type implPrinter struct {
	logger logger.Logger
	prefix string
}

// New creates a station.Handler that logs every event as a readable line.
// prefix, when set, tags each line with the run name.
func New(log logger.Logger, prefix string) station.Handler {
	return &implPrinter{
		logger: log,
		prefix: prefix,
	}
}

package report

import (
	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
)

type implWriter struct {
	logger logger.Logger
	clock  clockwork.Clock
	docx   bool
}

// New creates a Writer. When docx is set a .docx copy is written next to
// the markdown report.
func New(log logger.Logger, clock clockwork.Clock, docx bool) Writer {
	return &implWriter{
		logger: log,
		clock:  clock,
		docx:   docx,
	}
}

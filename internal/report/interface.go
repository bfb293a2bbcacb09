package report

import (
	"context"

	"github.com/nguyentantai21042004/pump-station/internal/stats"
)

// Writer renders run statistics into report files
type Writer interface {
	// Write stores the report for the named run in destDir and returns the
	// paths of the files it created.
	Write(ctx context.Context, name string, summary stats.Summary, destDir string) ([]string, error)
}

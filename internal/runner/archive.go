package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// archive moves a finished scenario out of the inbox. The timestamp prefix
// keeps reruns of the same file name apart.
func (r *implRunner) archive(ctx context.Context, scenarioPath string) error {
	if err := os.MkdirAll(r.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	filename := r.clock.Now().Format("20060102-150405") + "-" + filepath.Base(scenarioPath)
	destPath := filepath.Join(r.cfg.Paths.Archived, filename)

	r.logger.Info(ctx, "Archiving scenario: %s -> %s", scenarioPath, destPath)

	if err := os.Rename(scenarioPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

package runner

import (
	"context"

	"github.com/nguyentantai21042004/pump-station/internal/config"
	"github.com/nguyentantai21042004/pump-station/internal/station"
	"github.com/nguyentantai21042004/pump-station/internal/stats"
)

// Runner drives complete simulation runs
type Runner interface {
	// Run executes the scenario file at path on top of the base config,
	// writes its report and archives the file.
	Run(ctx context.Context, scenarioPath string) error
	// RunConfig executes one simulation described by cfg and writes its report
	RunConfig(ctx context.Context, name string, cfg config.Config, opts ...station.Option) (stats.Summary, error)
}

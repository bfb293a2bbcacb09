package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/pump-station/internal/config"
	"github.com/nguyentantai21042004/pump-station/internal/console"
	"github.com/nguyentantai21042004/pump-station/internal/station"
	"github.com/nguyentantai21042004/pump-station/internal/stats"
)

// Run executes a scenario file dropped into the inbox
func (r *implRunner) Run(ctx context.Context, scenarioPath string) error {
	scenario, err := config.LoadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	cfg := r.cfg.Apply(*scenario)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	summary, runErr := r.RunConfig(ctx, scenario.Name, cfg)

	// a cancelled run stays in the inbox so it is picked up again
	if runErr != nil && errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if err := r.archive(ctx, scenarioPath); err != nil {
		r.logger.Warn(ctx, "Failed to archive scenario %s: %v", scenarioPath, err)
	}
	if runErr != nil {
		return runErr
	}

	if len(summary.Violations) > 0 {
		return fmt.Errorf("scenario %s finished with %d violations", scenario.Name, len(summary.Violations))
	}
	return nil
}

// RunConfig runs one simulation and writes its report
func (r *implRunner) RunConfig(ctx context.Context, name string, cfg config.Config, opts ...station.Option) (stats.Summary, error) {
	startTime := r.clock.Now()

	r.logger.Info(ctx, "========================================")
	r.logger.Info(ctx, "Starting simulation: %s", name)
	r.logger.Info(ctx, "========================================")

	stationCfg := StationConfig(cfg)
	collector := stats.New(station.ClampSize(stationCfg.Pumps), station.ClampSize(stationCfg.QueueCapacity))

	opts = append([]station.Option{
		station.WithClock(r.clock),
		station.WithHandler(console.New(r.logger, name)),
		station.WithHandler(collector),
	}, opts...)
	st := station.New(stationCfg, r.logger, opts...)

	var warnings []string
	for _, w := range st.Warnings() {
		warnings = append(warnings, w.Error())
	}

	runErr := st.StartSimulation(ctx, cfg.Station.Cars)
	summary := collector.Summary()
	summary.Warnings = warnings
	if runErr != nil {
		return summary, fmt.Errorf("simulation %s: %w", name, runErr)
	}

	paths, err := r.report.Write(ctx, name, summary, r.cfg.Paths.Reports)
	if err != nil {
		return summary, fmt.Errorf("write report: %w", err)
	}
	r.runPostCommand(ctx, paths[0])

	r.logger.Info(ctx, "========================================")
	r.logger.Info(ctx, "Simulation completed: %s", name)
	r.logger.Info(ctx, "Cars served: %d/%d (dropped %d)", summary.Served, summary.Arrived, summary.Dropped)
	r.logger.Info(ctx, "Report: %s", filepath.Base(paths[0]))
	r.logger.Info(ctx, "Wall time: %s", r.clock.Since(startTime))
	r.logger.Info(ctx, "========================================")

	return summary, nil
}

// StationConfig maps the station and timing sections onto a station.Config.
// Sizes are passed through unchanged; station.New clamps them.
func StationConfig(cfg config.Config) station.Config {
	return station.Config{
		Pumps:         cfg.Station.Pumps,
		QueueCapacity: cfg.Station.QueueCapacity,
		Admission:     station.AdmissionPolicy(cfg.Station.Admission),
		Timing: station.Timing{
			ServiceMin:   cfg.Timing.ServiceMin,
			ServiceMax:   cfg.Timing.ServiceMax,
			ArrivalMin:   cfg.Timing.ArrivalMin,
			ArrivalMax:   cfg.Timing.ArrivalMax,
			PollInterval: cfg.Timing.PollInterval,
		},
	}
}

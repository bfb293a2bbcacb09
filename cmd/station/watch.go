package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/report"
	"github.com/nguyentantai21042004/pump-station/internal/runner"
	"github.com/nguyentantai21042004/pump-station/internal/watcher"
	"github.com/nguyentantai21042004/pump-station/pkg/executor"
	"github.com/spf13/cobra"
)

func watchCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run every scenario file dropped into the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := newLogger(cfg)
			defer log.Sync()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Pump Station Simulator")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
			log.Info(ctx, "Max Concurrent Scenarios: %d", cfg.Performance.MaxConcurrent)

			if err := ensureDirectories(cfg.Paths.Inbox, cfg.Paths.Archived, cfg.Paths.Reports); err != nil {
				log.Error(ctx, "Failed to create directories: %v", err)
				return err
			}

			clock := clockwork.NewRealClock()
			r := runner.New(cfg, executor.New(""), report.New(log, clock, cfg.Report.Docx), clock, log)

			w, err := watcher.New(cfg.Paths.Inbox, r.Run, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				log.Error(ctx, "Failed to create watcher: %v", err)
				return err
			}
			defer w.Stop()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Station is ready!")
			log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
			log.Info(ctx, "Reports: %s", cfg.Paths.Reports)
			log.Info(ctx, "Defaults: %d pumps, queue %d, %d cars, admission %s",
				cfg.Station.Pumps, cfg.Station.QueueCapacity, cfg.Station.Cars, cfg.Station.Admission)
			log.Info(ctx, "")
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			err = w.Start(ctx)
			log.Info(context.WithoutCancel(ctx), "Station stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

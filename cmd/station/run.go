package main

import (
	"fmt"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/config"
	"github.com/nguyentantai21042004/pump-station/internal/report"
	"github.com/nguyentantai21042004/pump-station/internal/runner"
	"github.com/nguyentantai21042004/pump-station/internal/station"
	"github.com/nguyentantai21042004/pump-station/pkg/executor"
	"github.com/spf13/cobra"
)

type runOptions struct {
	pumps     int
	queue     int
	cars      int
	seed      uint64
	admission string
	name      string
}

func runCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and write its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := newLogger(cfg)
			defer log.Sync()

			log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			if err := ensureDirectories(cfg.Paths.Reports); err != nil {
				return err
			}

			clock := clockwork.NewRealClock()
			r := runner.New(cfg, executor.New(""), report.New(log, clock, cfg.Report.Docx), clock, log)

			var stationOpts []station.Option
			if cmd.Flags().Changed("seed") {
				stationOpts = append(stationOpts, station.WithSeed(opts.seed))
			}

			summary, err := r.RunConfig(ctx, opts.name, *cfg, stationOpts...)
			if err != nil {
				return err
			}
			if len(summary.Violations) > 0 {
				return fmt.Errorf("simulation finished with %d violations", len(summary.Violations))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.pumps, "pumps", 0, "number of pumps (1-10)")
	flags.IntVar(&opts.queue, "queue", 0, "waiting area capacity (1-10)")
	flags.IntVar(&opts.cars, "cars", 0, "number of cars to simulate")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for service and arrival times")
	flags.StringVar(&opts.admission, "admission", "", "full queue policy: block or drop")
	flags.StringVar(&opts.name, "name", "simulation", "run name, used for the report file")
	return cmd
}

// apply puts explicitly set flags on top of the loaded config
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("pumps") {
		cfg.Station.Pumps = o.pumps
	}
	if flags.Changed("queue") {
		cfg.Station.QueueCapacity = o.queue
	}
	if flags.Changed("cars") {
		cfg.Station.Cars = o.cars
	}
	if flags.Changed("admission") {
		cfg.Station.Admission = o.admission
	}
	return cfg.Validate()
}

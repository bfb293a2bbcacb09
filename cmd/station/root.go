package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/pump-station/internal/config"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

type rootOptions struct {
	configPath string
}

func rootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "station",
		Short:         "Gas station pump and queue simulator",
		Long:          `Simulates cars queueing for a fixed number of pumps behind a bounded waiting area`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	cmd.AddCommand(runCommand(opts))
	cmd.AddCommand(watchCommand(opts))
	return cmd
}

// load reads the config file. A missing default config.yaml falls back to
// built-in defaults; an explicitly named file must exist.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err == nil {
		return cfg, nil
	}
	if cmd.Flags().Changed("config") || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	def := config.Default()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

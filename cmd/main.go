// Package main provides the CLI entrypoint for the cruise registry.
// It wires subcommands (cabins, passengers, assign, serve), loads
// configuration and initializes logging.
package main

import (
	"context"
	"cruise/internal/config"
	"cruise/internal/cruise"
	"cruise/pkg/logger"
	"cruise/pkg/rowreader/csvfile"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "config.yml"

// app carries what the subcommands share. It is filled by the root command
// before any subcommand runs.
type app struct {
	cfg *config.Config
	// loggerReady is set once logging has been configured.
	loggerReady bool
}

// loadConfig reads the config file. An explicitly requested file must exist;
// the default one is optional and falls back to env and defaults.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default()
		}
	}

	return config.Load(path)
}

// reader returns the row reader for the configured data file.
func (a *app) reader() *csvfile.Reader {
	return csvfile.New(a.cfg.Cruise.DataFile)
}

// loadRegistry builds a registry and loads it from the configured data file.
func (a *app) loadRegistry(ctx context.Context) (cruise.Registry, error) {
	registry := cruise.New(cruise.NewOptions(a.cfg))
	if err := registry.Load(ctx, a.reader()); err != nil {
		return nil, fmt.Errorf("could not load cruise: %w", err)
	}

	return registry, nil
}

// newRootCommand assembles the CLI.
func newRootCommand() *cobra.Command {
	return (&app{}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cruise",
		Short:         "Manages the cabins and passengers of a cruise",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			configPath, _ := flags.GetString("config")

			cfg, err := loadConfig(configPath, flags.Changed("config"))
			if err != nil {
				return err
			}
			if flags.Changed("file") {
				cfg.Cruise.DataFile, _ = flags.GetString("file")
			}
			if flags.Changed("name") {
				cfg.Cruise.Name, _ = flags.GetString("name")
			}
			a.cfg = cfg

			logger.Setup(cfg.Environment)
			a.loggerReady = true

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "Config File Path")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Cruise data file (overrides config)")
	rootCmd.PersistentFlags().String("name", "", "Cruise name (overrides config)")

	rootCmd.AddCommand(
		cabinsCommand(a),
		passengersCommand(a),
		assignCommand(a),
		serveCommand(a),
	)

	return rootCmd
}

func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	a := &app{}
	err := a.rootCommand().ExecuteContext(ctx)
	if err != nil {
		a.reportError(ctx, os.Stderr, err)
	}
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// reportError logs a failed command. Failures before logging is configured,
// such as a bad config file or bad arguments, go to w instead.
func (a *app) reportError(ctx context.Context, w io.Writer, err error) {
	if a.loggerReady {
		logger.Error(ctx, "command failed", zap.Error(err))

		return
	}

	fmt.Fprintln(w, "error:", err) //nolint: forbidigo
}

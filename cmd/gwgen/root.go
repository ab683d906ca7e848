package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-gw/config"
	"github.com/RyanBlaney/sonido-gw/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.File
	logger logging.Logger
	closer io.Closer
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	logger, closer := cfg.Logging.NewLogger()
	logging.SetGlobalLogger(logger)

	a.cfg = cfg
	a.logger = logger.WithFields(logging.Fields{"component": "gwgen"})
	a.closer = closer
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:                "gwgen",
		Short:              "Generate gravitational waveforms",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newNRCmd(a), newFDCmd(a), newSynthCmd(a))
	return root
}

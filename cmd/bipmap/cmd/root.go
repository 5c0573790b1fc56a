package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nanssss/bipmap/internal/config"
	"github.com/Nanssss/bipmap/internal/logger"
	"github.com/Nanssss/bipmap/internal/service/console"
	"github.com/Nanssss/bipmap/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// logLevel stores the minimum level for log output.
	logLevel string

	// rootCmd represents the base command that runs the interactive beeper.
	rootCmd = &cobra.Command{
		Use:   "bipmap",
		Short: "Play a repeating alert sound with adjustable volume and delay.",
		Long: `Interactive reminder that plays a sound at a fixed interval.

Reads the sound file, delay and volume from a YAML settings file, creating it
with defaults on first run, and then beeps until told to stop. While running
it accepts commands on standard input: -v <0-100> changes the volume,
-d <seconds> changes the delay, -s <file> swaps the sound, pause and resume
mute and unmute the beeps, and quit exits. Accepted changes are written back
to the settings file, so the next run starts where this one left off.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			} else {
				logger.Warnf(ctx, "Unknown log level %q, keeping %s", logLevel, logger.Level())
			}

			consoleOptions := &console.Options{
				ConfigPath: configPath,
			}

			return console.Run(ctx, consoleOptions)
		},
	}
)

// Execute runs the bipmap CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", logger.Level().String(), "minimum level of messages to log")
}

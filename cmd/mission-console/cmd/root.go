package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/oshokin/mission-console/internal/config"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/service/common"
	"github.com/oshokin/mission-console/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// serverURL overrides the configured server base URL.
	serverURL string
	// instance overrides the configured instance.
	instance string
	// processor overrides the configured processor.
	processor string
	// logLevel overrides the configured log level.
	logLevel string
	// quiet restricts logging to errors.
	quiet bool

	// rootCmd represents the base command of the console.
	rootCmd = &cobra.Command{
		Use:   "mission-console",
		Short: "Terminal console for a mission control server.",
		Long: `Terminal console for a mission control server speaking the REST and WebSocket API.

Follows live alarms and command history, shows parameter details, manages
stacks and displays in bucket storage and runs admin utilities.
Connection settings come from the configuration file, MCON_* environment
variables and the flags below, in increasing priority.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if quiet {
				logger.SetLogger(logger.New(nil, logger.WithLevel(zapcore.ErrorLevel)))
			}
		},
	}
)

// Execute runs the mission-console CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Connection flags are shared by every subcommand.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&serverURL, "server", "", "server base URL, e.g. http://localhost:8090")
	flags.StringVar(&instance, "instance", "", "instance name")
	flags.StringVar(&processor, "processor", "", "processor name")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	rootCmd.AddCommand(
		newAlarmsCommand(),
		newCmdhistCommand(),
		newUsersCommand(),
		newStorageCommand(),
		newThreadsCommand(),
		newParametersCommand(),
	)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// target collects the connection flags.
func target() common.Target {
	return common.Target{
		ConfigPath: configPath,
		ServerURL:  serverURL,
		Instance:   instance,
		Processor:  processor,
		LogLevel:   logLevel,
	}
}

// stdoutIsTerminal reports whether live tables can be redrawn in place.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // File descriptors fit in int.
}

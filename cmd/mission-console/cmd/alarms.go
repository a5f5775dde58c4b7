package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/service/alarms"
	"github.com/oshokin/mission-console/internal/service/common"
)

func newAlarmsCommand() *cobra.Command {
	alarmsCmd := &cobra.Command{
		Use:   "alarms",
		Short: "Inspect active alarms.",
	}

	var (
		once          bool
		snapshotPath  string
		retryInterval = common.DefaultRetryInterval
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the active alarms of the processor.",
		Long: `Loads the active alarms of the processor and follows their updates.

Alarms are keyed by parameter name and sorted by it. Cleared alarms disappear.
The table is redrawn on every change; use --once to print it once and exit.
Connection failures are retried until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			return alarms.Run(ctx, &alarms.Options{
				Target:        target(),
				Out:           cmd.OutOrStdout(),
				Once:          once,
				Clear:         !once && stdoutIsTerminal(),
				RetryInterval: retryInterval,
				SnapshotPath:  snapshotPath,
			})
		},
	}

	watchCmd.Flags().BoolVar(&once, "once", false, "print the current alarms and exit")
	watchCmd.Flags().StringVar(&snapshotPath, "save", "", "save every printed table as JSON to this file")
	watchCmd.Flags().DurationVar(&retryInterval, "retry", retryInterval, "delay before reconnecting")

	alarmsCmd.AddCommand(watchCmd)

	return alarmsCmd
}

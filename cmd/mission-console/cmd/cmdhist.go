package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/client"
	"github.com/oshokin/mission-console/internal/service/cmdhist"
	"github.com/oshokin/mission-console/internal/service/common"
)

func newCmdhistCommand() *cobra.Command {
	cmdhistCmd := &cobra.Command{
		Use:   "cmdhist",
		Short: "Inspect the command history.",
	}

	var (
		watchLimit    int
		once          bool
		snapshotPath  string
		retryInterval = common.DefaultRetryInterval
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow issued commands and their acknowledgments.",
		Long: `Loads the most recent archived commands and follows new ones.

Updates to a command (acknowledgments, completion) merge into its row.
Rows are sorted newest first; use --once to print the table once and exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signalContext()
			defer stop()

			return cmdhist.Watch(ctx, &cmdhist.WatchOptions{
				Target:        target(),
				Limit:         watchLimit,
				Out:           cmd.OutOrStdout(),
				Once:          once,
				Clear:         !once && stdoutIsTerminal(),
				RetryInterval: retryInterval,
				SnapshotPath:  snapshotPath,
			})
		},
	}

	watchCmd.Flags().IntVarP(&watchLimit, "limit", "n", client.DefaultHistoryLimit, "number of archived commands to load")
	watchCmd.Flags().BoolVar(&once, "once", false, "print the current history and exit")
	watchCmd.Flags().StringVar(&snapshotPath, "save", "", "save every printed table as JSON to this file")
	watchCmd.Flags().DurationVar(&retryInterval, "retry", retryInterval, "delay before reconnecting")

	var (
		exportLimit int
		output      string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the command history to an xlsx file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return cmdhist.Export(ctx, &cmdhist.ExportOptions{
				Target: target(),
				Limit:  exportLimit,
				Output: output,
			})
		},
	}

	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", client.DefaultHistoryLimit, "number of archived commands to export")
	exportCmd.Flags().StringVarP(&output, "output", "o", "command-history.xlsx", "path of the xlsx file")

	cmdhistCmd.AddCommand(watchCmd, exportCmd)

	return cmdhistCmd
}

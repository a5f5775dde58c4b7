package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/service/threads"
	view "github.com/oshokin/mission-console/internal/view/threads"
)

func newThreadsCommand() *cobra.Command {
	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "Inspect server threads.",
	}

	var (
		filter     string
		sortBy     string
		descending bool
	)

	columns := make([]string, 0, len(view.Columns))
	for _, c := range view.Columns {
		columns = append(columns, string(c))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the threads of the server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return threads.Run(ctx, &threads.Options{
				Target:     target(),
				Filter:     filter,
				SortBy:     sortBy,
				Descending: descending,
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	listCmd.Flags().StringVarP(&filter, "filter", "f", "", "show threads whose name contains this text")
	listCmd.Flags().StringVarP(&sortBy, "sort", "s", "", "sort column: "+strings.Join(columns, ", "))
	listCmd.Flags().BoolVar(&descending, "desc", false, "sort in descending order")

	threadsCmd.AddCommand(listCmd)

	return threadsCmd
}

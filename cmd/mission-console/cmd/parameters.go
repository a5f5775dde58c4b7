package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/service/parameters"
)

func newParametersCommand() *cobra.Command {
	parametersCmd := &cobra.Command{
		Use:   "parameters",
		Short: "Inspect the mission database.",
	}

	var contextExpression string

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a parameter or one of its members.",
		Long: `Shows the description, type and alarm levels of a parameter.

The name may end with a member path to show part of an aggregate or array,
e.g. /sat/attitude.points[2].x. With --context the alarm levels of that
context alarm take precedence over the default alarm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return parameters.Run(ctx, &parameters.Options{
				Target:  target(),
				Name:    args[0],
				Context: contextExpression,
				Out:     cmd.OutOrStdout(),
			})
		},
	}

	showCmd.Flags().StringVar(&contextExpression, "context", "", "context alarm expression")

	parametersCmd.AddCommand(showCmd)

	return parametersCmd
}

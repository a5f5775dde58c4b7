package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/mission-console/internal/service/storage"
)

func newStorageCommand() *cobra.Command {
	storageCmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage stacks and displays in bucket storage.",
	}

	var renameBucket string

	renameCmd := &cobra.Command{
		Use:   "rename <object> <new-name>",
		Short: "Rename an object, keeping its folder and extension.",
		Long: `Renames an object by copying it under the new name and deleting the original.

The new name replaces the base name only: the folder is kept and the
extension is lower-cased. If the original cannot be deleted the copy is kept
and a warning is printed.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // Object and new name.
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return storage.Rename(ctx, &storage.RenameOptions{
				Target:  target(),
				Bucket:  renameBucket,
				Object:  args[0],
				NewName: args[1],
				Out:     cmd.OutOrStdout(),
			})
		},
	}

	renameCmd.Flags().StringVarP(&renameBucket, "bucket", "b", "", "bucket of the object (default: stack bucket)")

	var urlBucket string

	urlCmd := &cobra.Command{
		Use:   "url <object>",
		Short: "Print the download URL of an object.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return storage.URL(ctx, &storage.URLOptions{
				Target: target(),
				Bucket: urlBucket,
				Object: args[0],
				Out:    cmd.OutOrStdout(),
			})
		},
	}

	urlCmd.Flags().StringVarP(&urlBucket, "bucket", "b", "", "bucket of the object (default: display bucket)")

	storageCmd.AddCommand(renameCmd, urlCmd)

	return storageCmd
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/mission-console/internal/dialog"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/service/common"
	"github.com/oshokin/mission-console/internal/view/display"
)

// RenameOptions configures the rename command.
type RenameOptions struct {
	common.Target

	// Bucket holds the object; defaults to the stack bucket.
	Bucket string
	// Object is the full name of the object to rename.
	Object string
	// NewName is the new base name, without directory or extension.
	NewName string
	// Out receives the new object name.
	Out io.Writer
}

// Rename renames an object by copying it and deleting the original.
func Rename(ctx context.Context, opts *RenameOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "storage-rename")

	c, cfg, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	bucket := opts.Bucket
	if bucket == "" {
		bucket = cfg.StackBucket
	}

	d := dialog.NewRenameDialog(c, bucket, opts.Object)
	d.Name = opts.NewName

	result, err := d.Submit(ctx)
	if err != nil {
		return err
	}

	actor, err := common.DetectActor()
	if err != nil {
		logger.DebugKV(ctx, "Actor detection failed", "error", err)
	}

	logger.InfoKV(ctx, "Object renamed",
		"bucket", bucket,
		"from", opts.Object,
		"to", result.Name,
		"renamed", result.Renamed,
		"actor", actor.String(),
	)

	if result.CleanupErr != nil {
		_, _ = fmt.Fprintf(opts.Out, "warning: %s still exists: %v\n", opts.Object, result.CleanupErr)
	}

	_, err = fmt.Fprintln(opts.Out, result.Name)

	return err
}

// URLOptions configures the object URL command.
type URLOptions struct {
	common.Target

	// Bucket holds the object; defaults to the display bucket.
	Bucket string
	// Object is the full object name.
	Object string
	// Out receives the URL.
	Out io.Writer
}

// URL prints the download URL of an object. Images are opened through the
// image viewer.
func URL(ctx context.Context, opts *URLOptions) error {
	ctx = logger.WithName(ctx, "storage-url")

	c, cfg, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	bucket := opts.Bucket
	if bucket == "" {
		bucket = cfg.DisplayBucket
	}

	url := c.ObjectURL(bucket, opts.Object)

	viewer, err := display.Open(ctx, c, bucket, opts.Object)
	switch {
	case err == nil:
		if image, ok := viewer.(*display.ImageViewer); ok {
			url = image.URL()
		}
	case errors.Is(err, display.ErrNoViewer):
		logger.DebugKV(ctx, "No viewer, printing raw object URL", "object", opts.Object)
	default:
		return err
	}

	_, err = fmt.Fprintln(opts.Out, url)

	return err
}

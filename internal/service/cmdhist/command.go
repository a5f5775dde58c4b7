package cmdhist

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/mission-console/internal/config"
	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/export"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/reducer"
	"github.com/oshokin/mission-console/internal/render"
	"github.com/oshokin/mission-console/internal/service/common"
	view "github.com/oshokin/mission-console/internal/view/cmdhist"
)

// WatchOptions configures the command history watch command.
type WatchOptions struct {
	common.Target

	// Limit is the number of archived commands loaded first.
	Limit int
	// Out receives the rendered tables.
	Out io.Writer
	// Once prints the current history and exits.
	Once bool
	// Clear redraws the table on a cleared terminal.
	Clear bool
	// RetryInterval is the delay before reconnecting after a failure.
	RetryInterval time.Duration
	// SnapshotPath, when set, receives every printed table as JSON.
	SnapshotPath string
}

// Watch follows the command history until ctx is cancelled.
func Watch(ctx context.Context, opts *WatchOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "cmdhist")

	c, cfg, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	logger.InfoKV(ctx, "Watching command history", "instance", cfg.Instance, "processor", cfg.Processor)

	page := view.NewPage(datasource.NewCommandHistory(c.CommandSource(opts.Limit)))

	return common.Watch(ctx, page.Source(), &common.WatchOptions{
		Instance:      cfg.Instance,
		Processor:     cfg.Processor,
		Out:           opts.Out,
		Once:          opts.Once,
		Clear:         opts.Clear,
		RetryInterval: opts.RetryInterval,
		SnapshotPath:  opts.SnapshotPath,
	}, func(entries []command.Entry) string {
		return render.DefaultTheme.CommandHistory(view.Rows(entries))
	})
}

// ExportOptions configures the command history export.
type ExportOptions struct {
	common.Target

	// Limit is the number of archived commands exported.
	Limit int
	// Output is the xlsx file to write.
	Output string
}

// Export writes the most recent archived commands to an xlsx file, newest first.
func Export(ctx context.Context, opts *ExportOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "cmdhist-export")

	c, _, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	archived, err := c.GetCommandHistory(ctx, opts.Limit)
	if err != nil {
		return err
	}

	rules := reducer.CommandRules()
	collection := reducer.NewCollection[command.ID, command.Entry]()

	for _, entry := range archived {
		if _, err := collection.Apply(rules, entry); err != nil {
			logger.WarnKV(ctx, "Skipping archived command", "error", err)
		}
	}

	entries := collection.List(rules.Compare)

	f, err := os.OpenFile(filepath.Clean(opts.Output), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := export.CommandHistory(f, entries); err != nil {
		_ = f.Close()

		return fmt.Errorf("export command history: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	logger.InfoKV(ctx, "Exported command history", "file", opts.Output, "commands", len(entries))

	return nil
}

//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/repository/snapshot"
)

// DefaultRetryInterval is the delay before a failed data source is reloaded.
const DefaultRetryInterval = 5 * time.Second

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// WatchOptions controls a live table loop.
type WatchOptions struct {
	// Instance is recorded in saved snapshots.
	Instance string
	// Processor is the processor to follow.
	Processor string
	// Out receives rendered tables.
	Out io.Writer
	// Once prints the first complete snapshot and returns.
	Once bool
	// Clear clears the terminal before every table.
	Clear bool
	// RetryInterval is the delay before reloading after a failure.
	// Zero means DefaultRetryInterval.
	RetryInterval time.Duration
	// SnapshotPath, when set, receives every printed collection as JSON.
	SnapshotPath string
}

// Watch loads ds and prints render(snapshot) on every change until ctx is
// cancelled. Updates received before the first snapshot are folded but not
// printed. A failed load is retried after RetryInterval; with Once the
// failure is returned instead.
func Watch[K comparable, E any](
	ctx context.Context,
	ds *datasource.DataSource[K, E],
	opts *WatchOptions,
	render func([]E) string,
) error {
	retryInterval := opts.RetryInterval
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	ds.Load(ctx, opts.Processor)
	defer ds.Disconnect()

	var repo *snapshot.FileRepository[E]
	if opts.SnapshotPath != "" {
		repo = snapshot.NewFileRepository[E](opts.SnapshotPath)
	}

	var (
		items   = ds.Connect()
		loading = ds.WatchLoading()
		ready   bool
		retry   <-chan time.Time
	)

	show := func(list []E) error {
		if opts.Clear {
			if _, err := io.WriteString(opts.Out, clearScreen); err != nil {
				return fmt.Errorf("write table: %w", err)
			}
		}

		if _, err := fmt.Fprintln(opts.Out, render(list)); err != nil {
			return fmt.Errorf("write table: %w", err)
		}

		if repo != nil {
			saveSnapshot(ctx, repo, opts, list)
		}

		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-retry:
			retry = nil

			logger.Info(ctx, "Reloading")
			ds.Load(ctx, opts.Processor)
		case isLoading, ok := <-loading:
			if !ok {
				return nil
			}

			if isLoading {
				ready = false

				continue
			}

			if err := ds.Err(); err != nil {
				if opts.Once {
					return err
				}

				logger.WarnKV(ctx, "Load failed, retrying", "retry_in", retryInterval, "error", err)

				retry = time.After(retryInterval)

				continue
			}

			ready = true

			if err := show(ds.Snapshot()); err != nil {
				return err
			}

			if opts.Once {
				return nil
			}
		case list, ok := <-items:
			if !ok {
				return nil
			}

			if !ready {
				continue
			}

			if err := show(list); err != nil {
				return err
			}
		}
	}
}

// saveSnapshot stores list in repo. Failures are logged, the live view goes on.
func saveSnapshot[E any](ctx context.Context, repo *snapshot.FileRepository[E], opts *WatchOptions, list []E) {
	actor, err := DetectActor()
	if err != nil {
		logger.DebugKV(ctx, "Actor detection failed", "error", err)
	}

	err = repo.Save(ctx, &snapshot.Snapshot[E]{
		Timestamp: time.Now().UTC(),
		SavedBy:   actor.String(),
		Instance:  opts.Instance,
		Processor: opts.Processor,
		Items:     list,
	})
	if err != nil {
		logger.WarnKV(ctx, "Snapshot not saved", "path", repo.Path(), "error", err)
	}
}

package alarms

import (
	"context"
	"io"
	"time"

	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/render"
	"github.com/oshokin/mission-console/internal/service/common"
)

// Options configures the alarms watch command.
type Options struct {
	common.Target

	// Out receives the rendered tables.
	Out io.Writer
	// Once prints the current alarms and exits.
	Once bool
	// Clear redraws the table on a cleared terminal.
	Clear bool
	// RetryInterval is the delay before reconnecting after a failure.
	RetryInterval time.Duration
	// SnapshotPath, when set, receives every printed table as JSON.
	SnapshotPath string
}

// Run follows the active alarms until ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarms")

	c, cfg, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	logger.InfoKV(ctx, "Watching alarms", "instance", cfg.Instance, "processor", cfg.Processor)

	ds := datasource.NewAlarms(c.AlarmSource())

	return common.Watch(ctx, ds, &common.WatchOptions{
		Instance:      cfg.Instance,
		Processor:     cfg.Processor,
		Out:           opts.Out,
		Once:          opts.Once,
		Clear:         opts.Clear,
		RetryInterval: opts.RetryInterval,
		SnapshotPath:  opts.SnapshotPath,
	}, func(list []alarm.Alarm) string {
		return render.DefaultTheme.Alarms(list)
	})
}

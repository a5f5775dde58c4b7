package threads

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/render"
	"github.com/oshokin/mission-console/internal/service/common"
	view "github.com/oshokin/mission-console/internal/view/threads"
)

// Options configures the thread dump command.
type Options struct {
	common.Target

	// Filter keeps threads whose name contains it, ignoring case.
	Filter string
	// SortBy names the sort column; empty keeps the server order.
	SortBy string
	// Descending reverses the sort.
	Descending bool
	// Out receives the table.
	Out io.Writer
}

// Run prints the server threads.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "threads")

	table := view.NewTable(nil)
	table.SetFilter(opts.Filter)

	if opts.SortBy != "" {
		column, err := view.ParseColumn(opts.SortBy)
		if err != nil {
			return err
		}

		table.SortBy(column, opts.Descending)
	}

	c, _, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	list, err := c.ListThreads(ctx)
	if err != nil {
		return err
	}

	table.SetThreads(list)
	rows := table.Rows()

	logger.DebugKV(ctx, "Threads listed", "total", len(list), "shown", len(rows))

	_, err = fmt.Fprintln(opts.Out, render.DefaultTheme.Threads(rows))

	return err
}

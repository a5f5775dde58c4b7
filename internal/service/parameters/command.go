package parameters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/render"
	"github.com/oshokin/mission-console/internal/service/common"
	"github.com/oshokin/mission-console/internal/view/parameter"
)

// ErrUnknownContext is returned when no context alarm matches the requested expression.
var ErrUnknownContext = errors.New("no context alarm with this expression")

// Options configures the parameter detail command.
type Options struct {
	common.Target

	// Name is the qualified name, optionally followed by a member path
	// such as "/sat/attitude.points[2].x".
	Name string
	// Context selects a context alarm by its expression.
	Context string
	// Out receives the detail pane.
	Out io.Writer
}

// Run prints the detail pane of a parameter or one of its members.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "parameters")

	name, offset := SplitOffset(opts.Name)

	c, _, err := common.Connect(ctx, &opts.Target)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	p, err := c.GetParameter(ctx, name)
	if err != nil {
		return err
	}

	detail := parameter.NewDetail()
	defer detail.Close()

	if err := detail.Update(p, offset); err != nil {
		return err
	}

	var contextAlarm *mdb.ContextAlarmInfo

	if opts.Context != "" {
		contextAlarm, err = findContextAlarm(detail.Type(), opts.Context)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(opts.Out, render.DefaultTheme.Parameter(detail.Entry(), detail.Type(), contextAlarm))

	return err
}

// SplitOffset separates a qualified name from a trailing member path. The
// path starts at the first "." or "[" after the last "/".
func SplitOffset(s string) (name, offset string) {
	start := strings.LastIndexByte(s, '/') + 1
	if idx := strings.IndexAny(s[start:], ".["); idx >= 0 {
		return s[:start+idx], s[start+idx:]
	}

	return s, ""
}

func findContextAlarm(ptype *mdb.ParameterType, expression string) (*mdb.ContextAlarmInfo, error) {
	if ptype != nil {
		for i := range ptype.ContextAlarm {
			if ptype.ContextAlarm[i].Context == expression {
				return &ptype.ContextAlarm[i], nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownContext, expression)
}

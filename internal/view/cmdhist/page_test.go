package cmdhist

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/domain/telemetry"
)

// stubStream never yields and ends on Close.
type stubStream struct {
	events chan command.Entry
}

func (s *stubStream) Events() <-chan command.Entry { return s.events }
func (s *stubStream) Err() error                   { return nil }
func (s *stubStream) Close() error                 { return nil }

// stubSource returns a fixed archive.
type stubSource struct {
	entries []command.Entry
	stream  *stubStream
}

func (s *stubSource) Fetch(context.Context, string) ([]command.Entry, error) {
	return s.entries, nil
}

func (s *stubSource) Subscribe(context.Context, string) (datasource.Stream[command.Entry], error) {
	return s.stream, nil
}

func entry(ms int64, seq int32, attrs ...command.Attribute) command.Entry {
	return command.Entry{
		CommandID: command.ID{GenerationTime: ms, Origin: "ops-1", SequenceNumber: seq, CommandName: "/sat/ping"},
		Attr:      attrs,
		Event:     command.EventIssued,
	}
}

func attr(name, value string) command.Attribute {
	return command.Attribute{Name: name, Value: telemetry.StringOf(value)}
}

// TestNewRow verifies the column values and completion states.
func TestNewRow(t *testing.T) {
	t.Parallel()

	pending := entry(1_700_000_000_000, 4, attr(command.AttrSource, "ping()"))
	row := NewRow(&pending)
	require.Equal(t, CompletionPending, row.Completion)
	require.Equal(t, time.UnixMilli(1_700_000_000_000).UTC(), row.GenerationTime)
	require.Equal(t, "/sat/ping", row.Command)
	require.Equal(t, "ping()", row.Source)
	require.Equal(t, "ops-1", row.SourceID)
	require.Equal(t, "4", row.Cells()[5])
	require.Len(t, row.Cells(), len(Columns))

	completed := entry(1, 1, attr(command.AttrCommandComplete, command.CompletionOK))
	require.Equal(t, CompletionCompleted, Completion(&completed))

	failed := entry(1, 1, attr(command.AttrCommandComplete, command.CompletionNOK))
	require.Equal(t, CompletionFailed, Completion(&failed))
}

// TestNewDetail checks attribute lookups with duplicate names.
func TestNewDetail(t *testing.T) {
	t.Parallel()

	e := entry(1, 1,
		attr(command.AttrSource, "reboot(now)"),
		attr(command.AttrUsername, "bob"),
		attr(command.AttrUsername, "alice"),
		attr(command.AttrCommandFailed, "timeout"),
		attr(command.AttrCommandComplete, command.CompletionNOK),
		command.Attribute{Name: command.AttrBinary, Value: telemetry.Value{Type: telemetry.ValueBinary, BinaryValue: []byte{0xca, 0xfe}}},
	)

	d := NewDetail(&e)
	require.Equal(t, "bob", d.Username)
	require.Equal(t, "reboot(now)", d.Source)
	require.Equal(t, "cafe", d.Binary)
	require.Equal(t, "timeout", d.FailedReason)
	require.Equal(t, CompletionFailed, d.Completion)
}

// TestPage_LoadAndSelect loads the archive and selects an entry.
func TestPage_LoadAndSelect(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		src := &stubSource{
			entries: []command.Entry{entry(1, 1), entry(3, 3), entry(2, 2)},
			stream:  &stubStream{events: make(chan command.Entry)},
		}

		page := NewPage(datasource.NewCommandHistory(src))
		defer page.Close()

		selected := page.WatchSelected()
		require.Nil(t, <-selected)

		page.Load(context.Background(), "realtime")
		synctest.Wait()

		rows := Rows(page.Source().Snapshot())
		require.Len(t, rows, 3)
		require.Equal(t, []int32{3, 2, 1}, []int32{rows[0].SequenceNumber, rows[1].SequenceNumber, rows[2].SequenceNumber})

		first := page.Source().Snapshot()[0]
		page.Select(&first)
		require.Equal(t, &first, <-selected)
		require.Equal(t, &first, page.Selected())

		page.Select(nil)
		require.Nil(t, page.Selected())
	})
}

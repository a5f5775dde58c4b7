package cmdhist

import (
	"context"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/observable"
)

// Completion states shown in the first column.
const (
	CompletionPending   = "PENDING"
	CompletionCompleted = "COMPLETED"
	CompletionFailed    = "FAILED"
)

// Columns are the table headers in display order.
var Columns = []string{
	"Completion",
	"Generation time (UTC)",
	"Command",
	"Source",
	"Source ID",
	"Sequence number",
}

// Row is one rendered command history entry.
type Row struct {
	// Completion is one of the Completion* states.
	Completion string
	// GenerationTime is the issue time in UTC.
	GenerationTime time.Time
	// Command is the qualified command name.
	Command string
	// Source is the command string as typed by the user.
	Source string
	// SourceID is the origin of the command.
	SourceID string
	// SequenceNumber is the origin-scoped sequence number.
	SequenceNumber int32
}

// Cells returns the row as strings in Columns order.
func (r Row) Cells() []string {
	return []string{
		r.Completion,
		r.GenerationTime.Format(time.RFC3339Nano),
		r.Command,
		r.Source,
		r.SourceID,
		strconv.FormatInt(int64(r.SequenceNumber), 10),
	}
}

// Page is the command history page bound to one data source.
type Page struct {
	// source keeps the live command history.
	source *datasource.CommandHistory
	// selected is the entry shown in the detail pane.
	selected *observable.Subject[*command.Entry]
}

// NewPage returns a page over source.
func NewPage(source *datasource.CommandHistory) *Page {
	return &Page{
		source:   source,
		selected: observable.NewSubject[*command.Entry](nil),
	}
}

// Load starts following the command history of processor.
func (p *Page) Load(ctx context.Context, processor string) {
	p.source.Load(ctx, processor)
}

// Source returns the data source of the page.
func (p *Page) Source() *datasource.CommandHistory {
	return p.source
}

// Close disconnects the data source and ends selection streams.
func (p *Page) Close() {
	p.source.Disconnect()
	p.selected.Complete()
}

// Select shows entry in the detail pane; nil clears the selection.
func (p *Page) Select(entry *command.Entry) {
	p.selected.Next(entry)
}

// Selected returns the selected entry, nil when none.
func (p *Page) Selected() *command.Entry {
	return p.selected.Value()
}

// WatchSelected streams selection changes until Close.
func (p *Page) WatchSelected() <-chan *command.Entry {
	ch, _ := p.selected.Subscribe()

	return ch
}

// Rows converts entries into table rows keeping their order.
func Rows(entries []command.Entry) []Row {
	rows := make([]Row, 0, len(entries))

	for i := range entries {
		rows = append(rows, NewRow(&entries[i]))
	}

	return rows
}

// NewRow converts one entry.
func NewRow(e *command.Entry) Row {
	return Row{
		Completion:     Completion(e),
		GenerationTime: e.GenerationTime(),
		Command:        e.CommandID.CommandName,
		Source:         e.Source(),
		SourceID:       e.CommandID.Origin,
		SequenceNumber: e.CommandID.SequenceNumber,
	}
}

// Completion returns the completion state of e.
func Completion(e *command.Entry) string {
	switch {
	case e.IsCompleted():
		return CompletionCompleted
	case e.IsFailed():
		return CompletionFailed
	default:
		return CompletionPending
	}
}

// Detail is the content of the detail pane.
type Detail struct {
	// Username issued the command.
	Username string
	// Source is the command string.
	Source string
	// Binary is the hex encoded command.
	Binary string
	// FailedReason explains a failure.
	FailedReason string
	// FinalSequenceCount is reported by the link.
	FinalSequenceCount string
	// Completion is one of the Completion* states.
	Completion string
}

// NewDetail extracts the detail pane of e.
func NewDetail(e *command.Entry) Detail {
	return Detail{
		Username:           e.Username(),
		Source:             e.Source(),
		Binary:             hex.EncodeToString(e.Binary()),
		FailedReason:       e.FailedReason(),
		FinalSequenceCount: e.FinalSequenceCount(),
		Completion:         Completion(e),
	}
}

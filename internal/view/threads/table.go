package threads

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/oshokin/mission-console/internal/domain/system"
)

// Column is a sortable column of the table.
type Column string

// Sortable columns.
const (
	ColumnID        Column = "id"
	ColumnState     Column = "state"
	ColumnName      Column = "name"
	ColumnNative    Column = "native"
	ColumnSuspended Column = "suspended"
	ColumnGroup     Column = "group"
)

// Columns lists the displayed columns in order.
var Columns = []Column{ColumnID, ColumnState, ColumnName, ColumnNative, ColumnSuspended, ColumnGroup}

// ErrUnknownColumn is returned for sort keys that name no column.
var ErrUnknownColumn = errors.New("unknown column")

// ParseColumn returns the column named s, ignoring case.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Columns, c) {
		return c, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}

// Table filters and sorts a thread dump.
type Table struct {
	// threads is the unfiltered dump.
	threads []system.ThreadInfo
	// filter is the lower-cased name filter.
	filter string
	// sortBy is the sort column; empty keeps the server order.
	sortBy Column
	// descending reverses the sort.
	descending bool
}

// NewTable returns a table over threads.
func NewTable(threads []system.ThreadInfo) *Table {
	return &Table{threads: threads}
}

// SetThreads replaces the dump.
func (t *Table) SetThreads(threads []system.ThreadInfo) {
	t.threads = threads
}

// SetFilter keeps only threads whose name contains filter, ignoring case.
func (t *Table) SetFilter(filter string) {
	t.filter = strings.ToLower(strings.TrimSpace(filter))
}

// SortBy orders rows by column. Ties keep the server order.
func (t *Table) SortBy(column Column, descending bool) {
	t.sortBy = column
	t.descending = descending
}

// Rows returns the filtered and sorted threads.
func (t *Table) Rows() []system.ThreadInfo {
	rows := make([]system.ThreadInfo, 0, len(t.threads))

	for _, thread := range t.threads {
		if t.filter == "" || strings.Contains(strings.ToLower(thread.Name), t.filter) {
			rows = append(rows, thread)
		}
	}

	if t.sortBy == "" {
		return rows
	}

	slices.SortStableFunc(rows, func(a, b system.ThreadInfo) int {
		c := compare(t.sortBy, a, b)
		if t.descending {
			return -c
		}

		return c
	})

	return rows
}

// Cells returns thread as strings in Columns order.
func Cells(thread system.ThreadInfo) []string {
	return []string{
		strconv.FormatInt(thread.ID, 10),
		thread.State,
		thread.Name,
		strconv.FormatBool(thread.Native),
		strconv.FormatBool(thread.Suspended),
		thread.Group,
	}
}

func compare(column Column, a, b system.ThreadInfo) int {
	switch column {
	case ColumnID:
		return cmp.Compare(a.ID, b.ID)
	case ColumnState:
		return strings.Compare(a.State, b.State)
	case ColumnName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case ColumnNative:
		return compareBool(a.Native, b.Native)
	case ColumnSuspended:
		return compareBool(a.Suspended, b.Suspended)
	case ColumnGroup:
		return strings.Compare(a.Group, b.Group)
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

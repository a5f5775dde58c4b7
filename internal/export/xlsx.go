package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/view/cmdhist"
)

// SheetName is the worksheet holding the command history.
const SheetName = "Command History"

// headers are the spreadsheet columns: the table columns followed by the
// detail pane fields.
var headers = append(append([]string(nil), cmdhist.Columns...),
	"Username",
	"Failure reason",
	"Final sequence count",
	"Binary",
)

// columnWidths are the widths of headers, in characters.
var columnWidths = []float64{12, 26, 36, 40, 16, 16, 16, 40, 20, 40}

// timeFormat is the number format of the generation time column.
const timeFormat = "yyyy-mm-dd hh:mm:ss.000"

// CommandHistory writes entries, in the given order, as an xlsx workbook.
func CommandHistory(w io.Writer, entries []command.Entry) (err error) {
	f := excelize.NewFile()

	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	timeStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: stringPtr(timeFormat)})
	if err != nil {
		return fmt.Errorf("create time style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	lastColumn, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", lastColumn+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}

		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i := range entries {
		if err := writeEntry(f, i+2, &entries[i]); err != nil {
			return err
		}
	}

	if len(entries) > 0 {
		last := fmt.Sprintf("B%d", len(entries)+1)
		if err := f.SetCellStyle(SheetName, "B2", last, timeStyle); err != nil {
			return fmt.Errorf("style times: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

// writeEntry fills one spreadsheet row.
func writeEntry(f *excelize.File, row int, e *command.Entry) error {
	r := cmdhist.NewRow(e)
	d := cmdhist.NewDetail(e)

	values := []any{
		r.Completion,
		r.GenerationTime,
		r.Command,
		r.Source,
		r.SourceID,
		r.SequenceNumber,
		d.Username,
		d.FailedReason,
		d.FinalSequenceCount,
		strings.ToUpper(d.Binary),
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}

	return nil
}

func stringPtr(s string) *string {
	return &s
}

package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

// WriteXLSX renders t as a single-sheet workbook. The row-number column is
// written as integers and every other cell as text, so values such as "007"
// keep their leading zeros.
func WriteXLSX(t *table.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := constants.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, common.NewKindError(common.KindFileIO, "create sheet", err)
	}
	idx, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(idx)

	columns := constants.Columns
	if t != nil && len(t.Columns) > 0 {
		columns = t.Columns
	}
	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, common.NewKindError(common.KindFileIO, "write header", err)
		}
	}

	for i, r := range tableRows(t) {
		row := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			if s, ok := v.(string); ok {
				return f.SetCellStr(sheet, cell, s)
			}
			return f.SetCellValue(sheet, cell, v)
		}
		for col, v := range []any{r.Number, r.Key, r.Value, r.Comment} {
			if err := write(col+1, v); err != nil {
				return nil, common.NewKindError(common.KindFileIO, fmt.Sprintf("write row %d", row), err)
			}
		}
	}

	letters := make([]string, 0, len(constants.ColumnWidths))
	for col := range constants.ColumnWidths {
		letters = append(letters, col)
	}
	sort.Strings(letters)
	for _, col := range letters {
		_ = f.SetColWidth(sheet, col, col, constants.ColumnWidths[col])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.NewKindError(common.KindFileIO, "xlsx write", err)
	}
	return buf.Bytes(), nil
}

// ReadXLSX loads a workbook back into a Table. It reads the Output sheet,
// falling back to the first sheet. Cells are read as their displayed text,
// so a numeric cell written by another tool comes back formatted (30, 0.5).
// A non-integer row-number cell reads as 0. Fully blank rows are skipped.
func ReadXLSX(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.NewKindError(common.KindFileIO, "open workbook", err)
	}
	defer func() { _ = f.Close() }()

	sheet := constants.SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, common.NewKindError(common.KindFileIO, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewKindError(common.KindFileIO, "read sheet "+sheet, err)
	}

	t := &table.Table{Rows: []table.Row{}}
	if len(rows) == 0 {
		return t, nil
	}
	t.Columns = append([]string(nil), rows[0]...)

	for _, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(cell(cells, 0)))
		if err != nil {
			n = 0
		}
		t.Rows = append(t.Rows, table.Row{
			Number:  n,
			Key:     cell(cells, 1),
			Value:   cell(cells, 2),
			Comment: cell(cells, 3),
		})
	}
	return t, nil
}

func tableRows(t *table.Table) []table.Row {
	if t == nil {
		return nil
	}
	return t.Rows
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

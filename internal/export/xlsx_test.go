package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	in := table.Materialize([]table.Record{
		{Key: "Name", Value: "Alice"},
		{Key: "Employee ID", Value: "007", Comment: "leading zeros"},
		{Key: "Salary", Value: "1,20,000", Comment: "INR per annum"},
		{Key: "Notes", Value: "", Comment: ""},
	})

	data, err := WriteXLSX(in)
	require.NoError(t, err)

	out, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, constants.Columns, out.Columns)
	require.Equal(t, in.Len(), out.Len())
	assert.Equal(t, in.Rows, out.Rows)
}

func TestWriteXLSX_Layout(t *testing.T) {
	data, err := WriteXLSX(table.Materialize([]table.Record{{Key: "Age", Value: "30"}}))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{constants.SheetName}, f.GetSheetList())

	typ, err := f.GetCellType(constants.SheetName, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "row number is numeric")

	v, err := f.GetCellValue(constants.SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "30", v)

	w, err := f.GetColWidth(constants.SheetName, "D")
	require.NoError(t, err)
	assert.Equal(t, 80.0, w)
}

func TestWriteXLSX_EmptyTable(t *testing.T) {
	data, err := WriteXLSX(table.Materialize(nil))
	require.NoError(t, err)

	out, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, constants.Columns, out.Columns)
	assert.Equal(t, 0, out.Len())
}

// Workbooks edited by hand often carry numeric cells; they come back as
// their displayed text rather than the original string.
func TestReadXLSX_NumericCellsCoerced(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range constants.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellStr(sheet, cell, h))
	}
	require.NoError(t, f.SetCellValue(sheet, "A2", 1))
	require.NoError(t, f.SetCellStr(sheet, "B2", "Age"))
	require.NoError(t, f.SetCellValue(sheet, "C2", 30))
	require.NoError(t, f.SetCellValue(sheet, "A3", "two"))
	require.NoError(t, f.SetCellStr(sheet, "B3", "Score"))
	require.NoError(t, f.SetCellValue(sheet, "C3", 0.5))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, table.Row{Number: 1, Key: "Age", Value: "30"}, out.Rows[0])
	assert.Equal(t, table.Row{Number: 0, Key: "Score", Value: "0.5"}, out.Rows[1], "invalid row number reads as 0")
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("plain text")))

	require.Error(t, err)
	assert.Equal(t, common.KindFileIO, common.KindOf(err))
}

func TestWriteFile_ReadFile(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 4, 5, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "out", OutputFileName(now))
	in := table.Materialize([]table.Record{{Key: "Name", Value: "Alice"}})

	require.NoError(t, WriteFile(path, in))
	out, err := ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "structured_output_20240315_090405.xlsx", filepath.Base(path))
	assert.Equal(t, in.Rows, out.Rows)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))

	assert.Equal(t, common.KindFileIO, common.KindOf(err))
}

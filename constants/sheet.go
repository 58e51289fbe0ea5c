package constants

// Output workbook layout. Columns are positional.
const (
	SheetName = "Output"

	ColumnNumber  = "#"
	ColumnKey     = "Key"
	ColumnValue   = "Value"
	ColumnComment = "Comments"

	OutputFilePrefix = "structured_output_"
	OutputTimeLayout = "20060102_150405"
)

// Columns is the fixed header row, in order.
var Columns = []string{ColumnNumber, ColumnKey, ColumnValue, ColumnComment}

// ColumnWidths maps column letters to their display width.
var ColumnWidths = map[string]float64{
	"A": 5,
	"B": 40,
	"C": 35,
	"D": 80,
}

package table

import (
	"slices"

	"github.com/joseph-ayodele/docsheet/constants"
)

// Record is one extracted fact as returned by the model.
type Record struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Comment string `json:"comments"`
}

// Row is a Record with its 1-based position in the output sheet.
type Row struct {
	Number  int
	Key     string
	Value   string
	Comment string
}

// Table is the ordered, row-numbered set of records plus its header.
// A Table read back from a workbook keeps whatever header and numbers the
// file carried, so drift stays visible to the evaluator.
type Table struct {
	Columns []string
	Rows    []Row
}

// Materialize numbers records 1..N in the order received. An empty input
// yields an empty table.
func Materialize(records []Record) *Table {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Number:  i + 1,
			Key:     r.Key,
			Value:   r.Value,
			Comment: r.Comment,
		}
	}
	return &Table{
		Columns: slices.Clone(constants.Columns),
		Rows:    rows,
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Keys returns the key column in row order.
func (t *Table) Keys() []string {
	return t.column(func(r Row) string { return r.Key })
}

// Values returns the value column in row order.
func (t *Table) Values() []string {
	return t.column(func(r Row) string { return r.Value })
}

// Comments returns the comment column in row order.
func (t *Table) Comments() []string {
	return t.column(func(r Row) string { return r.Comment })
}

// Numbers returns the row-number column in row order.
func (t *Table) Numbers() []int {
	if t == nil {
		return nil
	}
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Number
	}
	return out
}

// Records strips row numbers.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = Record{Key: r.Key, Value: r.Value, Comment: r.Comment}
	}
	return out
}

// UniqueKeys counts distinct keys.
func (t *Table) UniqueKeys() int {
	seen := make(map[string]struct{}, t.Len())
	for _, k := range t.Keys() {
		seen[k] = struct{}{}
	}
	return len(seen)
}

// CommentCount counts rows carrying a non-empty comment.
func (t *Table) CommentCount() int {
	n := 0
	for _, c := range t.Comments() {
		if c != "" {
			n++
		}
	}
	return n
}

func (t *Table) column(get func(Row) string) []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = get(r)
	}
	return out
}

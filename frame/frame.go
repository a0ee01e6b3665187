// Package frame provides a small column-ordered tabular frame and codecs
// translating it to and from CSV, Parquet and Excel payloads.
package frame

import "fmt"

// Frame is an ordered table: named columns and rows of cells. Cells are
// nil, bool, int64, float64 or string; CSV and Excel decode everything as
// string (both formats are untyped text at the cell level), Parquet keeps
// the typed values.
type Frame struct {
	Columns []string
	Rows    [][]interface{}
}

// New creates an empty frame with the given column names.
func New(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Append adds one row. The cell count must match the column count.
func (f *Frame) Append(cells ...interface{}) error {
	if len(cells) != len(f.Columns) {
		return fmt.Errorf("row has %d cells, frame has %d columns", len(cells), len(f.Columns))
	}
	f.Rows = append(f.Rows, cells)
	return nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all cells of the named column in row order.
func (f *Frame) Column(name string) ([]interface{}, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]interface{}, len(f.Rows))
	for i, row := range f.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// columnSample returns the first non-nil cell of column i, used by the
// Parquet codec to pick a physical type.
func (f *Frame) columnSample(i int) interface{} {
	for _, row := range f.Rows {
		if i < len(row) && row[i] != nil {
			return row[i]
		}
	}
	return nil
}

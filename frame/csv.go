package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

type csvOptions struct {
	comma      rune
	comment    rune
	lazyQuotes bool
}

// CSVOption adjusts how CSV payloads are read or written. Options pass
// straight through to the encoding/csv reader and writer.
type CSVOption func(*csvOptions)

// CSVComma sets the field delimiter (default ',').
func CSVComma(r rune) CSVOption {
	return func(o *csvOptions) { o.comma = r }
}

// CSVComment sets the comment rune; commented lines are skipped on read.
func CSVComment(r rune) CSVOption {
	return func(o *csvOptions) { o.comment = r }
}

// CSVLazyQuotes allows bare quotes inside unquoted fields on read.
func CSVLazyQuotes() CSVOption {
	return func(o *csvOptions) { o.lazyQuotes = true }
}

func applyCSVOptions(opts []CSVOption) csvOptions {
	var o csvOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DecodeCSV parses a CSV payload into a frame. The first record is the
// header; every cell decodes as string.
func DecodeCSV(r io.Reader, opts ...CSVOption) (*Frame, error) {
	o := applyCSVOptions(opts)

	cr := csv.NewReader(r)
	if o.comma != 0 {
		cr.Comma = o.comma
	}
	if o.comment != 0 {
		cr.Comment = o.comment
	}
	cr.LazyQuotes = o.lazyQuotes

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header record")
	}

	f := New(records[0]...)
	for _, rec := range records[1:] {
		cells := make([]interface{}, len(rec))
		for i, s := range rec {
			cells[i] = s
		}
		if err := f.Append(cells...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// EncodeCSV writes the frame as CSV, header first.
func EncodeCSV(f *Frame, w io.Writer, opts ...CSVOption) error {
	o := applyCSVOptions(opts)

	cw := csv.NewWriter(w)
	if o.comma != 0 {
		cw.Comma = o.comma
	}

	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	record := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for i := range f.Columns {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

package frame

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// cellType picks the Go type backing a column from a sample cell. A column
// with no non-nil cells falls back to string.
func cellType(sample interface{}) reflect.Type {
	switch sample.(type) {
	case bool:
		return reflect.TypeOf(false)
	case int, int32, int64:
		return reflect.TypeOf(int64(0))
	case float32, float64:
		return reflect.TypeOf(float64(0))
	default:
		return reflect.TypeOf("")
	}
}

// parquetRowType builds a struct type mirroring the frame's columns in
// declaration order. Schemas derived from structs keep that order, which is
// how the frame's column order survives a round trip; parquet.Group would
// sort the fields by name. All fields are pointers, so nil cells become
// nulls.
func parquetRowType(f *Frame) (reflect.Type, error) {
	fields := make([]reflect.StructField, len(f.Columns))
	for i, col := range f.Columns {
		if col == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		// The column name travels in a struct tag and must survive tag parsing.
		if strings.ContainsAny(col, ",\"`") {
			return nil, fmt.Errorf("column %q: name not representable in a parquet schema", col)
		}
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("Col%d", i),
			Type: reflect.PointerTo(cellType(f.columnSample(i))),
			Tag:  reflect.StructTag(fmt.Sprintf(`parquet:"%s,optional"`, col)),
		}
	}
	return reflect.StructOf(fields), nil
}

// EncodeParquet writes the frame as a Parquet file. All columns are stored
// as optional values; nil cells become nulls. A column's physical type comes
// from its first non-nil cell, and the remaining cells must be of the same
// kind.
func EncodeParquet(f *Frame, w io.Writer) error {
	rowType, err := parquetRowType(f)
	if err != nil {
		return err
	}
	schema := parquet.SchemaOf(reflect.New(rowType).Elem().Interface())

	pw := parquet.NewWriter(w, schema)
	for _, row := range f.Rows {
		rv := reflect.New(rowType).Elem()
		for i, col := range f.Columns {
			if i >= len(row) || row[i] == nil {
				continue
			}
			elem := rowType.Field(i).Type.Elem()
			cv := reflect.ValueOf(row[i])
			// reflect happily converts integers to string, so strings need an
			// exact type check.
			if elem.Kind() == reflect.String && cv.Kind() != reflect.String {
				return fmt.Errorf("column %q: cannot store %T as string", col, row[i])
			}
			if !cv.CanConvert(elem) {
				return fmt.Errorf("column %q: cannot store %T as %s", col, row[i], elem)
			}
			ptr := reflect.New(elem)
			ptr.Elem().Set(cv.Convert(elem))
			rv.Field(i).Set(ptr)
		}
		if err := pw.Write(rv.Addr().Interface()); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

// DecodeParquet parses a Parquet payload into a frame. Columns follow the
// file's schema order, which EncodeParquet stores in frame order; integers
// come back as int64, floats as float64, byte arrays as string.
func DecodeParquet(data []byte) (*Frame, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	fields := pf.Schema().Fields()
	columns := make([]string, len(fields))
	for i, fld := range fields {
		columns[i] = fld.Name()
	}

	f := New(columns...)
	buf := make([]parquet.Row, 64)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(f, rg, buf); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// readRowGroup appends one row group's rows to the frame. In a flat schema
// every value carries the leaf column index it belongs to, and leaf indexes
// follow the schema's field order.
func readRowGroup(f *Frame, rg parquet.RowGroup, buf []parquet.Row) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]interface{}, len(f.Columns))
			for _, v := range row {
				if ci := v.Column(); ci >= 0 && ci < len(cells) {
					cells[ci] = parquetCell(v)
				}
			}
			f.Rows = append(f.Rows, cells)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read parquet: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func parquetCell(v parquet.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}

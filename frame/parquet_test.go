package frame

import (
	"bytes"
	"reflect"
	"testing"
)

func TestParquetRoundTrip(t *testing.T) {
	// Deliberately non-alphabetical column order; it must survive as is.
	f := New("name", "visits", "active", "score")
	f.Append("ada", int64(3), true, 9.5)
	f.Append("grace", int64(7), false, 8.25)
	f.Append("linus", int64(0), true, nil)

	var buf bytes.Buffer
	if err := EncodeParquet(f, &buf); err != nil {
		t.Fatalf("EncodeParquet failed: %v", err)
	}

	back, err := DecodeParquet(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeParquet failed: %v", err)
	}

	if !reflect.DeepEqual(back.Columns, f.Columns) {
		t.Fatalf("columns = %v, want %v", back.Columns, f.Columns)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, f)
	}
}

func TestParquetNullCells(t *testing.T) {
	f := New("b", "a")
	f.Append(nil, "x")
	f.Append("y", nil)

	var buf bytes.Buffer
	if err := EncodeParquet(f, &buf); err != nil {
		t.Fatalf("EncodeParquet failed: %v", err)
	}

	back, err := DecodeParquet(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeParquet failed: %v", err)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, f)
	}
}

func TestParquetEmptyColumnName(t *testing.T) {
	f := New("a", "")
	f.Append("1", "2")

	var buf bytes.Buffer
	if err := EncodeParquet(f, &buf); err == nil {
		t.Fatal("empty column name should fail")
	}
}

func TestParquetMixedTypeColumn(t *testing.T) {
	f := New("v")
	f.Append(int64(1))
	f.Append("not a number")

	var buf bytes.Buffer
	if err := EncodeParquet(f, &buf); err == nil {
		t.Fatal("mixed-type column should fail instead of storing garbage")
	}
}

func TestParquetMalformed(t *testing.T) {
	if _, err := DecodeParquet([]byte("definitely not parquet")); err == nil {
		t.Fatal("garbage input should fail")
	}
}

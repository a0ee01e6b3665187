package frame

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	f := New("name", "city", "age")
	f.Append("ada", "london", "36")
	f.Append("grace", "new york", "85")

	var buf bytes.Buffer
	if err := EncodeCSV(f, &buf); err != nil {
		t.Fatalf("EncodeCSV failed: %v", err)
	}

	back, err := DecodeCSV(&buf)
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, f)
	}
}

func TestCSVDelimiterOption(t *testing.T) {
	f := New("a", "b")
	f.Append("1", "2")

	var buf bytes.Buffer
	if err := EncodeCSV(f, &buf, CSVComma(';')); err != nil {
		t.Fatalf("EncodeCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), "1;2") {
		t.Fatalf("delimiter not applied: %q", buf.String())
	}

	back, err := DecodeCSV(strings.NewReader(buf.String()), CSVComma(';'))
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("round trip mismatch with delimiter: %+v", back)
	}
}

func TestCSVCommentOption(t *testing.T) {
	in := "# generated\na,b\n1,2\n"
	f, err := DecodeCSV(strings.NewReader(in), CSVComment('#'))
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if !reflect.DeepEqual(f.Columns, []string{"a", "b"}) {
		t.Errorf("columns = %v", f.Columns)
	}
	if f.NumRows() != 1 {
		t.Errorf("rows = %d", f.NumRows())
	}
}

func TestCSVTypedCellsFormat(t *testing.T) {
	f := New("s", "i", "f", "b", "n")
	f.Append("x", int64(42), 1.5, true, nil)

	var buf bytes.Buffer
	if err := EncodeCSV(f, &buf); err != nil {
		t.Fatalf("EncodeCSV failed: %v", err)
	}
	want := "s,i,f,b,n\nx,42,1.5,true,\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestCSVMalformed(t *testing.T) {
	if _, err := DecodeCSV(strings.NewReader("")); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := DecodeCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Error("ragged record should fail")
	}
}

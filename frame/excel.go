package frame

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when the caller does not pick one.
const DefaultSheet = "Sheet1"

// EncodeExcel renders the frame as an xlsx workbook with a single sheet.
// An empty sheet name means DefaultSheet.
func EncodeExcel(f *Frame, sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	x := excelize.NewFile()
	defer x.Close()

	if sheet != DefaultSheet {
		if err := x.SetSheetName(DefaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	}

	for j, col := range f.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, err
		}
		if err := x.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	for i, row := range f.Rows {
		for j := range f.Columns {
			if j >= len(row) || row[j] == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := x.SetCellValue(sheet, cell, row[j]); err != nil {
				return nil, err
			}
		}
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeExcel parses one sheet of an xlsx workbook into a frame. An empty
// sheet name selects the workbook's first sheet. Cells decode as string,
// the representation excelize reads them back in.
func DecodeExcel(data []byte, sheet string) (*Frame, error) {
	x, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer x.Close()

	if sheet == "" {
		sheet = x.GetSheetName(0)
	}

	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return New(), nil
	}

	f := New(rows[0]...)
	for _, r := range rows[1:] {
		cells := make([]interface{}, len(f.Columns))
		for j := range f.Columns {
			// GetRows drops trailing empty cells; pad them back.
			if j < len(r) {
				cells[j] = r[j]
			} else {
				cells[j] = ""
			}
		}
		f.Rows = append(f.Rows, cells)
	}
	return f, nil
}

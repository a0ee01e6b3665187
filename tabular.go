package dropfs

import (
	"bytes"
	"context"

	"github.com/unalkalkan/dropfs/frame"
)

// ReadCSV downloads and parses a CSV file. Options pass through to the
// underlying codec.
func (c *Client) ReadCSV(ctx context.Context, p string, opts ...frame.CSVOption) (*frame.Frame, error) {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return nil, err
	}

	f, err := frame.DecodeCSV(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, decodeErr(np, "csv", err)
	}
	return f, nil
}

// WriteCSV encodes the frame as CSV text and uploads it.
func (c *Client) WriteCSV(ctx context.Context, f *frame.Frame, p string, opts ...frame.CSVOption) error {
	var buf bytes.Buffer
	if err := frame.EncodeCSV(f, &buf, opts...); err != nil {
		return err
	}
	return c.upload(ctx, buf.Bytes(), p)
}

// ReadParquet downloads and parses a Parquet file.
func (c *Client) ReadParquet(ctx context.Context, p string) (*frame.Frame, error) {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return nil, err
	}

	f, err := frame.DecodeParquet(data)
	if err != nil {
		return nil, decodeErr(np, "parquet", err)
	}
	return f, nil
}

// WriteParquet encodes the frame as Parquet and uploads it.
func (c *Client) WriteParquet(ctx context.Context, f *frame.Frame, p string) error {
	var buf bytes.Buffer
	if err := frame.EncodeParquet(f, &buf); err != nil {
		return err
	}
	return c.upload(ctx, buf.Bytes(), p)
}

// ReadExcel downloads a workbook and parses its first sheet.
func (c *Client) ReadExcel(ctx context.Context, p string) (*frame.Frame, error) {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return nil, err
	}

	f, err := frame.DecodeExcel(data, "")
	if err != nil {
		return nil, decodeErr(np, "excel", err)
	}
	return f, nil
}

// ReadExcelSheets downloads a workbook once and parses the named sheets,
// returning a frame per sheet name.
func (c *Client) ReadExcelSheets(ctx context.Context, p string, sheets []string) (map[string]*frame.Frame, error) {
	data, np, err := c.download(ctx, p)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*frame.Frame, len(sheets))
	for _, sheet := range sheets {
		f, err := frame.DecodeExcel(data, sheet)
		if err != nil {
			return nil, decodeErr(np, "excel", err)
		}
		out[sheet] = f
	}
	return out, nil
}

// WriteExcel uploads the frame as a single-sheet workbook named
// frame.DefaultSheet.
func (c *Client) WriteExcel(ctx context.Context, f *frame.Frame, p string) error {
	return c.WriteExcelSheet(ctx, f, p, "")
}

// WriteExcelSheet uploads the frame as a single-sheet workbook with the
// given sheet name.
func (c *Client) WriteExcelSheet(ctx context.Context, f *frame.Frame, p, sheet string) error {
	data, err := frame.EncodeExcel(f, sheet)
	if err != nil {
		return err
	}
	return c.upload(ctx, data, p)
}

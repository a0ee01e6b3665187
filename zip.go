package dropfs

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
)

// ReadZip downloads a zip archive and returns the content of one member.
// An empty member name selects the first entry in the archive's own listing
// order, not alphabetical order. Writing archives is not supported.
func (c *Client) ReadZip(ctx context.Context, archive, member string) ([]byte, error) {
	data, np, err := c.download(ctx, archive)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, decodeErr(np, "zip", err)
	}

	if member == "" {
		if len(zr.File) == 0 {
			return nil, decodeErr(np, "zip", fmt.Errorf("archive has no entries"))
		}
		member = zr.File[0].Name
	}

	for _, f := range zr.File {
		if f.Name != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, decodeErr(np, "zip", err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, decodeErr(np, "zip", err)
		}
		return content, nil
	}
	return nil, decodeErr(np, "zip", fmt.Errorf("no member %q", member))
}

// ZipNames downloads a zip archive and lists its member names in the
// archive's physical order.
func (c *Client) ZipNames(ctx context.Context, archive string) ([]string, error) {
	data, np, err := c.download(ctx, archive)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, decodeErr(np, "zip", err)
	}

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	return names, nil
}

// Package dropfs is a convenience client over a remote cloud-storage file
// API. It layers path normalization, existence checks, move/delete semantics
// and typed read/write of common data formats (text, YAML, CSV, Parquet,
// Excel, ZIP) on top of a narrow store interface; Dropbox is the primary
// backend.
//
// Every operation is a blocking request/response against the remote store:
// no caching, no retries, no transactions. Failures from the store or from a
// codec propagate to the caller annotated with the path involved.
package dropfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/dropfs/remote"
	"github.com/unalkalkan/dropfs/remote/dropbox"
)

// Logger is the logging capability the client consumes. *logrus.Logger and
// logrus.FieldLogger satisfy it.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Client is the typed convenience layer over a remote.Store. It holds the
// store handle and a logger for its whole lifetime and carries no other
// state; concurrent use is as safe as the underlying store allows.
type Client struct {
	store remote.Store
	log   Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger injects the logger the client reports operations through.
// The default is the logrus standard logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client for a Dropbox account using the given access token.
func New(token string, opts ...Option) *Client {
	return NewWithStore(dropbox.New(token), opts...)
}

// NewWithStore creates a client over any remote.Store implementation.
func NewWithStore(store remote.Store, opts ...Option) *Client {
	c := &Client{
		store: store,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// download is the shared fetch half of the transfer pipeline. It is
// binary-only; text decoding happens at the adapter boundary. The normalized
// path is returned alongside the content so adapters can report it in decode
// failures.
func (c *Client) download(ctx context.Context, p string) ([]byte, string, error) {
	np, err := Normalize(p)
	if err != nil {
		return nil, "", err
	}

	c.log.Infof("downloading '%s'", np)

	_, body, err := c.store.Download(ctx, np)
	if err != nil {
		return nil, np, fmt.Errorf("download %s: %w", np, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, np, fmt.Errorf("download %s: %w", np, err)
	}
	return data, np, nil
}

// upload is the shared push half of the transfer pipeline. Existing content
// at the path is overwritten; the store does not version or merge.
func (c *Client) upload(ctx context.Context, data []byte, p string) error {
	np, err := Normalize(p)
	if err != nil {
		return err
	}

	c.log.Infof("uploading '%s' (%d bytes)", np, len(data))

	if err := c.store.Upload(ctx, bytes.NewReader(data), np, true); err != nil {
		return fmt.Errorf("upload %s: %w", np, err)
	}
	return nil
}

// Exists reports whether path denotes an existing remote object. It searches
// the parent folder for the leaf name and accepts only a result whose
// normalized path equals the target, compared case-insensitively to honor
// the store's case folding. A same-named object in a sibling folder is not a
// match. Absence is a normal outcome, not an error.
func (c *Client) Exists(ctx context.Context, p string) (bool, error) {
	np, err := Normalize(p)
	if err != nil {
		return false, err
	}
	parent, leaf := splitPath(np)

	matches, err := c.store.Search(ctx, parent, leaf)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", np, err)
	}

	for _, m := range matches {
		mp, err := Normalize(m.Path)
		if err != nil {
			continue
		}
		if strings.EqualFold(mp, np) {
			return true, nil
		}
	}
	return false, nil
}

// List returns the names of the entries in a folder, sorted in ascending
// lexicographic byte order regardless of the remote listing's native order.
func (c *Client) List(ctx context.Context, folder string) ([]string, error) {
	np, err := Normalize(folder)
	if err != nil {
		return nil, err
	}

	entries, err := c.store.ListFolder(ctx, np)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", np, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the object at path. Whether deleting an absent path fails
// is the remote store's own semantics and is not masked here.
func (c *Client) Delete(ctx context.Context, p string) error {
	np, err := Normalize(p)
	if err != nil {
		return err
	}

	c.log.Infof("deleting '%s'", np)

	if err := c.store.Delete(ctx, np); err != nil {
		return fmt.Errorf("delete %s: %w", np, err)
	}
	return nil
}

// Move relocates src to dest. With overwrite set, an existing destination is
// deleted first; the store does not merge. The native move primitive is used
// when the store has one, with copy-then-delete as the portable fallback.
func (c *Client) Move(ctx context.Context, src, dest string, overwrite bool) error {
	nsrc, err := Normalize(src)
	if err != nil {
		return err
	}
	ndest, err := Normalize(dest)
	if err != nil {
		return err
	}

	c.log.Infof("moving '%s' to '%s'", nsrc, ndest)

	if overwrite {
		exists, err := c.Exists(ctx, ndest)
		if err != nil {
			return err
		}
		if exists {
			if err := c.store.Delete(ctx, ndest); err != nil {
				return fmt.Errorf("move %s to %s: clear destination: %w", nsrc, ndest, err)
			}
		}
	}

	err = c.store.Move(ctx, nsrc, ndest)
	if errors.Is(err, remote.ErrNotSupported) {
		if err := c.store.Copy(ctx, nsrc, ndest); err != nil {
			return fmt.Errorf("move %s to %s: %w", nsrc, ndest, err)
		}
		err = c.store.Delete(ctx, nsrc)
	}
	if err != nil {
		return fmt.Errorf("move %s to %s: %w", nsrc, ndest, err)
	}
	return nil
}

// ReadFile downloads the raw bytes stored at path.
func (c *Client) ReadFile(ctx context.Context, p string) ([]byte, error) {
	data, _, err := c.download(ctx, p)
	return data, err
}

// WriteFile uploads raw bytes to path, overwriting existing content.
func (c *Client) WriteFile(ctx context.Context, data []byte, p string) error {
	return c.upload(ctx, data, p)
}

// ReadText downloads the file at path and decodes it as UTF-8 text.
func (c *Client) ReadText(ctx context.Context, p string) (string, error) {
	data, _, err := c.download(ctx, p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText uploads text as UTF-8 to path, overwriting existing content.
func (c *Client) WriteText(ctx context.Context, text string, p string) error {
	return c.upload(ctx, []byte(text), p)
}

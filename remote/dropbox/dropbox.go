// Package dropbox implements remote.Store on top of the official Dropbox
// HTTP API via the unofficial Go SDK.
package dropbox

import (
	"context"
	"fmt"
	"io"
	"strings"

	dbx "github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/unalkalkan/dropfs/remote"
)

// Store talks to a single Dropbox account. The zero value is not usable;
// construct with New or NewFromClient.
//
// The underlying SDK does not accept a context, so the ctx arguments are
// honored only for early bail-out before issuing a call; timeout behavior is
// whatever the SDK's HTTP client does.
type Store struct {
	files files.Client
}

// New creates a Store authenticated with the given access token.
func New(token string) *Store {
	cfg := dbx.Config{
		Token:    token,
		LogLevel: dbx.LogOff,
	}
	return &Store{files: files.New(cfg)}
}

// NewFromClient wraps an existing files.Client. Useful for tests and for
// callers that need custom SDK configuration.
func NewFromClient(c files.Client) *Store {
	return &Store{files: c}
}

// apiPath translates a normalized path to the Dropbox API convention, which
// spells the root folder as "" rather than "/".
func apiPath(p string) string {
	if p == "/" {
		return ""
	}
	return p
}

// isNotFound reports whether a Dropbox API error denotes a missing path.
// The SDK surfaces the error union tag in the message (e.g. "path/not_found").
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not_found")
}

func (s *Store) Search(ctx context.Context, folder, name string) ([]remote.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	arg := files.NewSearchV2Arg(name)
	opts := files.NewSearchOptions()
	opts.Path = apiPath(folder)
	opts.FilenameOnly = true
	arg.Options = opts

	res, err := s.files.SearchV2(arg)
	if err != nil {
		if isNotFound(err) {
			// Searching inside a missing folder means no matches.
			return nil, nil
		}
		return nil, fmt.Errorf("dropbox search %q in %s: %w", name, folder, err)
	}

	var matches []remote.Match
	for _, m := range res.Matches {
		if m.Metadata == nil {
			continue
		}
		switch md := m.Metadata.Metadata.(type) {
		case *files.FileMetadata:
			matches = append(matches, remote.Match{Path: md.PathLower, Name: md.Name})
		case *files.FolderMetadata:
			matches = append(matches, remote.Match{Path: md.PathLower, Name: md.Name})
		}
	}
	return matches, nil
}

func (s *Store) ListFolder(ctx context.Context, path string) ([]remote.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.files.ListFolder(files.NewListFolderArg(apiPath(path)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("dropbox list %s: %w", path, remote.ErrNotFound)
		}
		return nil, fmt.Errorf("dropbox list %s: %w", path, err)
	}

	var entries []remote.Entry
	for {
		for _, e := range res.Entries {
			switch md := e.(type) {
			case *files.FileMetadata:
				entries = append(entries, remote.Entry{Name: md.Name})
			case *files.FolderMetadata:
				entries = append(entries, remote.Entry{Name: md.Name, IsFolder: true})
			}
		}
		if !res.HasMore {
			return entries, nil
		}
		res, err = s.files.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("dropbox list %s: %w", path, err)
		}
	}
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.files.DeleteV2(files.NewDeleteArg(apiPath(path))); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("dropbox delete %s: %w", path, remote.ErrNotFound)
		}
		return fmt.Errorf("dropbox delete %s: %w", path, err)
	}
	return nil
}

func (s *Store) Copy(ctx context.Context, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.files.CopyV2(files.NewRelocationArg(apiPath(src), apiPath(dest))); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("dropbox copy %s to %s: %w", src, dest, remote.ErrNotFound)
		}
		return fmt.Errorf("dropbox copy %s to %s: %w", src, dest, err)
	}
	return nil
}

func (s *Store) Move(ctx context.Context, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.files.MoveV2(files.NewRelocationArg(apiPath(src), apiPath(dest))); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("dropbox move %s to %s: %w", src, dest, remote.ErrNotFound)
		}
		return fmt.Errorf("dropbox move %s to %s: %w", src, dest, err)
	}
	return nil
}

func (s *Store) Download(ctx context.Context, path string) (remote.Metadata, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return remote.Metadata{}, nil, err
	}

	md, content, err := s.files.Download(files.NewDownloadArg(apiPath(path)))
	if err != nil {
		if isNotFound(err) {
			return remote.Metadata{}, nil, fmt.Errorf("dropbox download %s: %w", path, remote.ErrNotFound)
		}
		return remote.Metadata{}, nil, fmt.Errorf("dropbox download %s: %w", path, err)
	}
	return remote.Metadata{Path: md.PathLower, Size: int64(md.Size)}, content, nil
}

func (s *Store) Upload(ctx context.Context, data io.Reader, path string, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	arg := files.NewUploadArg(apiPath(path))
	mode := files.WriteModeAdd
	if overwrite {
		mode = files.WriteModeOverwrite
	}
	arg.Mode = &files.WriteMode{Tagged: dbx.Tagged{Tag: mode}}

	if _, err := s.files.Upload(arg, data); err != nil {
		return fmt.Errorf("dropbox upload %s: %w", path, err)
	}
	return nil
}

// Close is a no-op; the SDK holds no resources beyond its HTTP client.
func (s *Store) Close() error {
	return nil
}

// Package local implements remote.Store on a local directory. It exists for
// tests and offline development; the directory plays the role of the remote
// account root.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/unalkalkan/dropfs/remote"
)

// Store maps normalized absolute paths onto files below a base directory.
type Store struct {
	basePath string
}

// New creates a Store rooted at basePath, creating the directory if needed.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// fullPath returns the filesystem location of a normalized path.
func (s *Store) fullPath(p string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}

func (s *Store) Search(ctx context.Context, folder, name string) ([]remote.Match, error) {
	entries, err := os.ReadDir(s.fullPath(folder))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("local search %q in %s: %w", name, folder, err)
	}

	var matches []remote.Match
	for _, e := range entries {
		if e.Name() == name {
			matches = append(matches, remote.Match{
				Path: path.Join(folder, e.Name()),
				Name: e.Name(),
			})
		}
	}
	return matches, nil
}

func (s *Store) ListFolder(ctx context.Context, p string) ([]remote.Entry, error) {
	dirents, err := os.ReadDir(s.fullPath(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("local list %s: %w", p, remote.ErrNotFound)
		}
		return nil, fmt.Errorf("local list %s: %w", p, err)
	}

	var entries []remote.Entry
	for _, d := range dirents {
		entries = append(entries, remote.Entry{Name: d.Name(), IsFolder: d.IsDir()})
	}
	return entries, nil
}

// Delete removes a file or folder. Deleting an absent path fails with
// ErrNotFound, mirroring the Dropbox semantics the tests lean on.
func (s *Store) Delete(ctx context.Context, p string) error {
	full := s.fullPath(p)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("local delete %s: %w", p, remote.ErrNotFound)
		}
		return fmt.Errorf("local delete %s: %w", p, err)
	}
	if err := os.RemoveAll(full); err != nil {
		return fmt.Errorf("local delete %s: %w", p, err)
	}
	return nil
}

// Copy is not implemented; the client falls back to the native Move.
func (s *Store) Copy(ctx context.Context, src, dest string) error {
	return remote.ErrNotSupported
}

func (s *Store) Move(ctx context.Context, src, dest string) error {
	from := s.fullPath(src)
	to := s.fullPath(dest)

	if _, err := os.Stat(from); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("local move %s: %w", src, remote.ErrNotFound)
		}
		return fmt.Errorf("local move %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return fmt.Errorf("local move %s to %s: %w", src, dest, err)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("local move %s to %s: %w", src, dest, err)
	}
	return nil
}

func (s *Store) Download(ctx context.Context, p string) (remote.Metadata, io.ReadCloser, error) {
	full := s.fullPath(p)

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return remote.Metadata{}, nil, fmt.Errorf("local download %s: %w", p, remote.ErrNotFound)
		}
		return remote.Metadata{}, nil, fmt.Errorf("local download %s: %w", p, err)
	}

	f, err := os.Open(full)
	if err != nil {
		return remote.Metadata{}, nil, fmt.Errorf("local download %s: %w", p, err)
	}
	return remote.Metadata{Path: p, Size: info.Size()}, f, nil
}

func (s *Store) Upload(ctx context.Context, data io.Reader, p string, overwrite bool) error {
	full := s.fullPath(p)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("local upload %s: %w", p, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		return fmt.Errorf("local upload %s: %w", p, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("local upload %s: %w", p, err)
	}
	return nil
}

// Close cleans up any resources; nothing to release for a directory.
func (s *Store) Close() error {
	return nil
}

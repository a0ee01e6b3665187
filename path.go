package dropfs

import (
	"path"
	"strings"
)

// Normalize canonicalizes a user-supplied path into the remote convention:
// forward slashes only, exactly one leading slash, no trailing slash except
// for the root itself.
//
// Malformed segments follow filesystem-resolution semantics: repeated
// separators collapse ("a//b" -> "/a/b"), "." and ".." resolve, and ".."
// cannot climb above the root ("/../x" -> "/x"). Normalize is pure and
// idempotent.
//
// An empty or all-whitespace path fails with PathError rather than being
// sent to the remote store.
func Normalize(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", &PathError{Path: p, Reason: "empty path"}
	}

	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), nil
}

// splitPath cuts a normalized path into its parent folder and leaf name.
// For a root-level path the parent is "/".
func splitPath(p string) (parent, leaf string) {
	return path.Dir(p), path.Base(p)
}

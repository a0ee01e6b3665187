package dropfs

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"notes.yml", "/notes.yml"},
		{"/notes.yml", "/notes.yml"},
		{"//notes.yml", "/notes.yml"},
		{"a/b/c.txt", "/a/b/c.txt"},
		{"a//b", "/a/b"},
		{`a\b\c.txt`, "/a/b/c.txt"},
		{"/a/b/", "/a/b"},
		{"/", "/"},
		{"/a/./b", "/a/b"},
		{"/a/../b", "/b"},
		{"/../x", "/x"},
		{"..", "/"},
	}

	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Errorf("Normalize(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"notes.yml", "//a///b", `foo\bar`, "/a/b/../c/", "/", "a/./b"}

	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeEmptyPath(t *testing.T) {
	for _, in := range []string{"", "   "} {
		_, err := Normalize(in)
		if err == nil {
			t.Fatalf("Normalize(%q) should fail", in)
		}
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Errorf("Normalize(%q) error = %T, want *PathError", in, err)
		}
	}
}

func TestSplitPath(t *testing.T) {
	parent, leaf := splitPath("/a/b/c.txt")
	if parent != "/a/b" || leaf != "c.txt" {
		t.Errorf("splitPath(/a/b/c.txt) = %q, %q", parent, leaf)
	}

	// A root-level path must resolve its parent to the root marker.
	parent, leaf = splitPath("/notes.yml")
	if parent != "/" || leaf != "notes.yml" {
		t.Errorf("splitPath(/notes.yml) = %q, %q", parent, leaf)
	}
}

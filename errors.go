package dropfs

import "fmt"

// PathError reports a path that could not be normalized. It is returned
// before any remote call is made.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// DecodeError reports remote content that does not conform to the structured
// format a typed read requested. The raw bytes were downloaded successfully;
// only decoding failed.
type DecodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(path, format string, err error) error {
	return &DecodeError{Path: path, Format: format, Err: err}
}

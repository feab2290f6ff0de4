// Package verr defines the typed error kinds shared across packages, so
// callers can switch on error identity with errors.As instead of matching
// strings.
package verr

import "fmt"

// InvalidIndex is returned when an index or range argument falls outside
// the valid bounds for the operation.
type InvalidIndex struct {
	Index int
	Len   int
}

func (e InvalidIndex) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d]", e.Index, e.Len)
}

// IoErrorKind classifies the underlying cause of an IoError.
type IoErrorKind uint8

const (
	IoErrorOther IoErrorKind = iota
	IoErrorNotFound
	IoErrorPermission
)

// IoError wraps a filesystem failure encountered while loading text,
// classified into the kinds callers actually need to branch on.
type IoError struct {
	Kind IoErrorKind
	Path string
	Err  error
}

func (e IoError) Error() string {
	return fmt.Sprintf("io error for %q: %v", e.Path, e.Err)
}

func (e IoError) Unwrap() error {
	return e.Err
}

// InvalidUtf8 is returned when text passed to a buffer is not valid UTF-8.
type InvalidUtf8 struct {
	ByteOffset int64
}

func (e InvalidUtf8) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte offset %d", e.ByteOffset)
}

// ScissorUnderflow is returned by a clip-stack pop with nothing left to pop.
type ScissorUnderflow struct{}

func (e ScissorUnderflow) Error() string {
	return "pop_scissor_rect called with an empty clip stack"
}

// Package errs defines the sentinel errors shared by every tcoll package.
//
// Callers should match errors with errors.Is; most errors returned by the
// engine wrap one of these sentinels with positional context.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNilBuffer is returned when no buffer is supplied where a collection is required.
	ErrNilBuffer = errors.New("nil collection buffer")
	// ErrIndexOutOfRange is returned when a logical index falls outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidCount is returned when a range count is negative or runs past the collection end.
	ErrInvalidCount = errors.New("invalid range count")
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("format error")
	// ErrSizeOverflow is returned when a count or length does not fit the configured size encoding.
	ErrSizeOverflow = errors.New("size exceeds encoding width")
	// ErrCorrupted is returned when a buffer is truncated or internally inconsistent.
	ErrCorrupted = errors.New("corrupted collection buffer")
	// ErrInvalidSizeEncoding is returned for a size width other than 1, 2, 4 or 8 bytes.
	ErrInvalidSizeEncoding = errors.New("invalid size encoding")
	// ErrKindMismatch is returned when a source collection holds a different element kind.
	ErrKindMismatch = errors.New("element kind mismatch")
)

// FormatError reports a literal that could not be parsed, or a value that
// could not be encoded under the requested layout.
type FormatError struct {
	// Token is the offending literal or a description of the unencodable value.
	Token string
	// Err is the underlying cause, if any.
	Err error
}

// NewFormatError creates a FormatError for token with an optional cause.
func NewFormatError(token string, cause error) *FormatError {
	return &FormatError{Token: token, Err: cause}
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("format error at %q", e.Token)
	}

	return fmt.Sprintf("format error at %q: %v", e.Token, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes every FormatError match ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

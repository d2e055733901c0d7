// Package errs provides the closed error taxonomy used by the decoder, and
// a position-carrying wrapper so every diagnostic can report where in the
// stream it occurred.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error the decoder returns is, or wraps, one of these.
var (
	ErrUnexpectedEOF          = errors.New("nrbf: unexpected end of stream")
	ErrInvalidVarInt          = errors.New("nrbf: invalid 7-bit encoded length")
	ErrInvalidUTF8            = errors.New("nrbf: invalid utf-8 string payload")
	ErrUnknownRecord          = errors.New("nrbf: unknown record tag")
	ErrRecordTagMismatch      = errors.New("nrbf: record tag mismatch")
	ErrUnknownClassMetadata   = errors.New("nrbf: unknown class metadata id")
	ErrDuplicateClassMetadata = errors.New("nrbf: duplicate class metadata id")
	ErrUnknownLibrary         = errors.New("nrbf: unknown library id")
	ErrDuplicateLibrary       = errors.New("nrbf: duplicate library id")
	ErrBadPrimitive           = errors.New("nrbf: unsupported primitive kind")
	ErrUnsupportedFeature     = errors.New("nrbf: unsupported feature")
	ErrMissingHeader          = errors.New("nrbf: stream does not start with a serialization header")
)

// Error wraps a sentinel with the cursor position it was raised at and the
// operation that raised it, so a caller-facing diagnostic never has to
// reconstruct "where did this happen" by hand.
type Error struct {
	Op  string
	Pos int64
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v (at offset %d)", e.Err, e.Pos)
	}

	return fmt.Sprintf("%s: %v (at offset %d)", e.Op, e.Err, e.Pos)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error wrapping sentinel with additional context,
// recording pos as the cursor offset at the time of failure.
func Errorf(pos int64, sentinel error, format string, args ...any) error {
	wrapped := sentinel
	if format != "" {
		wrapped = fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
	}

	return &Error{Pos: pos, Err: wrapped}
}

// At wraps an existing error with position context without introducing an
// additional sentinel; used when a lower layer (e.g. a nested decode) has
// already produced a well-formed error and only needs a position stamped
// at the call site that observed it.
func At(pos int64, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Pos: pos, Err: err}
}

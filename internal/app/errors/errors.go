package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types
var (
	// Request errors
	ErrMissingFile = New("no file")

	// File errors
	ErrFileNotRemoved = New("staged file not removed")
)

// Kind classifies an error by the stage of request handling it came from.
type Kind string

const (
	KindUnknown       Kind = ""
	KindMissingFile   Kind = "missing_file"
	KindStaging       Kind = "staging"
	KindTranscription Kind = "transcription"
	KindCleanup       Kind = "cleanup"
)

// Error represents a standardized error
type Error struct {
	message string
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.message
}

// Is reports whether target is the same sentinel
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.message == t.message
}

// kindError tags an error with a Kind without changing its message.
type kindError struct {
	kind Kind
	err  error
}

func (k *kindError) Error() string { return k.err.Error() }

func (k *kindError) Unwrap() error { return k.err }

// WithKind tags err with kind. The message is left untouched so it can be
// surfaced to clients verbatim.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// KindOf returns the outermost Kind attached to err.
func KindOf(err error) Kind {
	var k *kindError
	if stderrors.As(err, &k) {
		return k.kind
	}
	if stderrors.Is(err, ErrMissingFile) {
		return KindMissingFile
	}
	return KindUnknown
}

// CleanupError records a failed removal of a staged file. It matches both
// ErrFileNotRemoved and the underlying cause, and carries KindCleanup.
func CleanupError(cause error) error {
	if cause == nil {
		return nil
	}
	return WithKind(fmt.Errorf("%w: %w", ErrFileNotRemoved, cause), KindCleanup)
}

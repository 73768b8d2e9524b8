package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed invocation.
type ErrorKind int

const (
	InputNotFound ErrorKind = iota + 1
	OutputWriteFailed
	InvalidMode
	EncodingError
)

var (
	ErrInputNotFound     = &Error{Kind: InputNotFound}
	ErrOutputWriteFailed = &Error{Kind: OutputWriteFailed}
	ErrInvalidMode       = &Error{Kind: InvalidMode}
	ErrEncoding          = &Error{Kind: EncodingError}
)

func (k ErrorKind) String() string {
	switch k {
	case InputNotFound:
		return "input not found"
	case OutputWriteFailed:
		return "output write failed"
	case InvalidMode:
		return "invalid mode"
	case EncodingError:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// ExitCode returns the process exit status for this kind. The range starts
// at 10 so it never collides with the driver's environment checks.
func (k ErrorKind) ExitCode() int {
	switch k {
	case InputNotFound:
		return 10
	case OutputWriteFailed:
		return 11
	case InvalidMode:
		return 12
	case EncodingError:
		return 13
	default:
		return 1
	}
}

// Error is a terminal failure of one counting invocation.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* values work as
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) ExitCode() int {
	return e.Kind.ExitCode()
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

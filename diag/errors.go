package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a diagnostic failure. Every error that crosses a package
// boundary in this repository carries exactly one kind so the CLI and the
// tool manual consumers can react without string matching.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindPermission      Kind = "permission_denied"
	KindTimeout         Kind = "timeout"
	KindCommandFailed   Kind = "command_failed"
	KindInvalidArgument Kind = "invalid_argument"
	KindParse           Kind = "parse_error"
)

// Error is the single error type surfaced by readers and the command runner.
type Error struct {
	Kind Kind
	Op   string // operation or subsystem that reported the failure
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error of the given kind.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an underlying cause.
func Wrap(kind Kind, op string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

func NotFoundf(op, format string, args ...any) *Error {
	return Errorf(KindNotFound, op, format, args...)
}

func Permissionf(op, format string, args ...any) *Error {
	return Errorf(KindPermission, op, format, args...)
}

func Timeoutf(op, format string, args ...any) *Error {
	return Errorf(KindTimeout, op, format, args...)
}

func CommandFailedf(op, format string, args ...any) *Error {
	return Errorf(KindCommandFailed, op, format, args...)
}

func InvalidArgumentf(op, format string, args ...any) *Error {
	return Errorf(KindInvalidArgument, op, format, args...)
}

func Parsef(op, format string, args ...any) *Error {
	return Errorf(KindParse, op, format, args...)
}

// KindOf reports the kind of err, or the empty string when err does not
// carry one.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

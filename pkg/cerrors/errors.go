// Package cerrors implements the description-plus-cause error chain the rest
// of cntr uses to report failures up to the CLI. It plays the same role as
// lazydocker's go-errors/xerrors ComplexError (pkg/commands/errors.go), but
// generalized to the taxonomy of a namespace/overlay attach tool instead of a
// single MustStopContainer code.
package cerrors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies a failure the way spec's error taxonomy does, so callers
// can branch on what went wrong (e.g. to pick an exit code) without string
// matching the description.
type Kind int

const (
	// KindUnknown is the zero value: an error with no particular taxonomy.
	KindUnknown Kind = iota
	KindContainerNotFound
	KindContainerNotRunning
	KindContainerDied
	KindToolsMissing
	KindIdMapParse
	KindStatusParse
	KindNamespaceEnter
	KindMountFailed
	KindFdHandoff
	KindAlreadyAttached
	KindCancelled
	KindChildExec
)

func (k Kind) String() string {
	switch k {
	case KindContainerNotFound:
		return "ContainerNotFound"
	case KindContainerNotRunning:
		return "ContainerNotRunning"
	case KindContainerDied:
		return "ContainerDied"
	case KindToolsMissing:
		return "ToolsMissing"
	case KindIdMapParse:
		return "IdMapParse"
	case KindStatusParse:
		return "StatusParse"
	case KindNamespaceEnter:
		return "NamespaceEnter"
	case KindMountFailed:
		return "MountFailed"
	case KindFdHandoff:
		return "FdHandoff"
	case KindAlreadyAttached:
		return "AlreadyAttached"
	case KindCancelled:
		return "Cancelled"
	case KindChildExec:
		return "ChildExec"
	default:
		return "Unknown"
	}
}

// Error is the Go rendition of the original source's types.rs Error{desc,
// cause}: a human-readable description plus an optional wrapped cause,
// displayed outer-to-inner joined by ": ".
type Error struct {
	Desc  string
	Cause error
	Kind  Kind
}

// New creates a plain description error with no cause and no specific kind.
// Mirrors the rust Error::from(String) conversion.
func New(desc string) *Error {
	return &Error{Desc: desc}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(format string, args ...interface{}) *Error {
	return &Error{Desc: fmt.Sprintf(format, args...)}
}

// Wrap attaches desc to cause, the way the rust tryfmt!/errfmt! macros wrap a
// lower error with a description of what was being attempted.
func Wrap(cause error, desc string) *Error {
	return &Error{Desc: desc, Cause: cause, Kind: KindOf(cause)}
}

// Wrapf is Wrap with fmt.Sprintf formatting for desc.
func Wrapf(cause error, format string, args ...interface{}) *Error {
	return Wrap(cause, fmt.Sprintf(format, args...))
}

// WithKind sets the taxonomy kind and returns the same error for chaining,
// e.g. cerrors.New("...").WithKind(cerrors.KindContainerNotFound).
func (e *Error) WithKind(k Kind) *Error {
	e.Kind = k
	return e
}

// Error implements the error interface, walking the chain outer to inner.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Desc
	}
	if e.Desc == "" {
		return e.Cause.Error()
	}
	return e.Desc + ": " + e.Cause.Error()
}

// Unwrap lets errors.Is/errors.As walk the chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the taxonomy Kind carried by err if it (or something it
// wraps) is a *Error, else KindUnknown.
func KindOf(err error) Kind {
	for err != nil {
		if ce, ok := err.(*Error); ok && ce.Kind != KindUnknown {
			return ce.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// Is reports whether err carries the given Kind anywhere in its chain.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}

// Stack renders a stack trace the way main.go does for unexpected top-level
// errors, via go-errors.
func Stack(err error) string {
	return goerrors.Wrap(err, 1).ErrorStack()
}

package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"syscall"
)

// ErrorKind classifies a filesystem failure for callers that need to map it
// onto a user-visible response.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindIsADirectory
	KindAlreadyExists
	KindNoPermission
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindIsADirectory:
		return "is a directory"
	case KindAlreadyExists:
		return "already exists"
	case KindNoPermission:
		return "no permission"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned by the write-family stubs. No working
// implementation exists for them; callers must treat an invocation as fatal.
var ErrUnsupported = errors.New("operation not supported")

// Error wraps an underlying OS error with a classified kind and the path the
// operation targeted.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Path + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Path
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps an underlying error onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, iofs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, iofs.ErrPermission):
		return KindNoPermission
	case errors.Is(err, iofs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, syscall.EISDIR):
		return KindIsADirectory
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindUnknown
	}
}

// KindOf extracts the kind from a classified error, falling back to Classify
// for plain OS errors.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Classify(err)
}

// wrapPath classifies err and attaches the path. Returns nil for nil err.
func wrapPath(path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Classify(err), Path: path, Err: err}
}

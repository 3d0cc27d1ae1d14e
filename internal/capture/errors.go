package capture

import "fmt"

// ErrorKind classifies capture failures.
type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "permission_denied"
	KindUnavailable      ErrorKind = "unavailable"
	KindUnsupported      ErrorKind = "unsupported"
)

// Error reports a failure to obtain an image. Capture errors are never retried
// automatically.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("capture %s: %s", e.Op, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage returns the text shown when capture fails.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindPermissionDenied:
		return "Unable to access camera. Please check permissions."
	case KindUnavailable:
		return "No camera is available. Try uploading a photo instead."
	case KindUnsupported:
		return "Please choose an image file."
	default:
		return "Unable to capture image."
	}
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

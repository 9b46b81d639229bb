package assistant

import "fmt"

// ErrorKind is the stable tag carried by structured tool errors.
type ErrorKind string

const (
	// ErrUnknownOperation is the only kind that escapes the router as a
	// hard failure.
	ErrUnknownOperation ErrorKind = "unknown_operation"
	// ErrValidation marks a malformed or missing required argument.
	ErrValidation ErrorKind = "validation"
	// ErrRemoteAuth marks a 401/403 from the calendar API. Never
	// retried automatically.
	ErrRemoteAuth ErrorKind = "remote_auth"
	// ErrRemoteTransient marks other remote failures.
	ErrRemoteTransient ErrorKind = "remote_transient"
	// ErrNotFound marks a reference to an event absent from the
	// snapshot.
	ErrNotFound ErrorKind = "not_found"
	// ErrAmbiguousIntent marks a classification the heuristics could
	// not make confidently. Resolved via fallback defaults, not raised.
	ErrAmbiguousIntent ErrorKind = "ambiguous_intent"
)

// Error is a structured tool failure with a user-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a structured error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithContext attaches machine-readable context, e.g. the list of valid
// titles on a not-found error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

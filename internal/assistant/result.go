package assistant

// Result is the outcome of one tool call: either a success payload or a
// structured error, never both.
type Result struct {
	// Text is the user-facing rendering of the outcome.
	Text string
	// Data is the operation-specific payload.
	Data map[string]any
	// Err is set for failed calls.
	Err *Error
	// Cached is set when the result was served from the duplicate-call
	// cache without re-executing side effects.
	Cached bool
}

// OK reports whether the call succeeded.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil
}

// Failure wraps a structured error as a result.
func Failure(err *Error) *Result {
	return &Result{Text: err.Message, Err: err}
}

package calendar

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// RemoteError wraps a failed remote calendar operation with the HTTP
// status code when one could be determined. StatusCode is zero for
// network-level failures.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("calendar %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// AuthFailure reports whether the remote rejected the call for
// authentication or authorization reasons.
func (e *RemoteError) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// UserMessage returns the user-facing message for this failure. 401, 403
// and generic failures each map to a distinct message.
func (e *RemoteError) UserMessage() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "Google Calendar rejected the stored credentials. Please sign in again to restore calendar access."
	case http.StatusForbidden:
		return "This Google account does not have permission to modify the calendar. Check the calendar sharing settings or sign in with a different account."
	default:
		return "Google Calendar is unreachable right now. The event was prepared locally instead."
	}
}

// classifyError wraps err as a *RemoteError, extracting the HTTP status
// code from googleapi errors.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &RemoteError{Op: op, StatusCode: gerr.Code, Err: err}
	}
	return &RemoteError{Op: op, Err: err}
}

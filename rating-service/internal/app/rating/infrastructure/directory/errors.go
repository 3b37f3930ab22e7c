package directory

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrForbidden means the directory refused to show the record to the caller.
var ErrForbidden = errors.New("directory: caller may not view this record")

// NotFoundError is returned when the directory has no record with the id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// TransportError covers connection failures, timeouts, unexpected statuses
// and bodies that cannot be decoded. All but unexpected 4xx answers are retried.
type TransportError struct {
	Kind       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s directory returned status %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s directory unreachable: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// retryable is false for 4xx answers: the same request would be refused again.
func (e *TransportError) retryable() bool {
	return e.StatusCode < http.StatusBadRequest || e.StatusCode >= http.StatusInternalServerError
}

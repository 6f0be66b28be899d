package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind partitions failures by how the caller recovers: Unauthorized feeds the
// refresh-and-retry cycle, Validation/Conflict/NotFound surface to the user,
// Transient may be retried manually and never triggers a refresh.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindConflict
	KindNotFound
	KindValidation
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from any error returned by the client.
// Errors that are not *Error (context cancellation, transport failures that
// escaped wrapping) count as transient.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

func kindFromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindTransient
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed API call. Status is the HTTP status of a structured
// rejection, or 0 for a transport failure (timeout, refused connection),
// which carries no server message. Message is the server's human-readable
// reason when one was returned.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("api: %v", e.Err)
	default:
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func statusIs(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports an invalid-credentials / expired-token rejection.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsForbidden reports a role/permission rejection.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsConflict reports a duplicate-resource rejection.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsServer reports a 5xx upstream failure.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

// Message extracts the structured server message from err, or returns
// fallback when there is none (transport failures, unexpected errors).
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

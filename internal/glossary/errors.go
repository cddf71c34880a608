package glossary

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all remote operations. Callers match them
// with errors.Is; none of them is retried anywhere in this codebase.
var (
	ErrAuthentication   = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrTransient        = errors.New("transient network error")
)

// APIError is a non-2xx response from the Translation service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("translation API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("translation API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known HTTP statuses onto the sentinel taxonomy so
// that errors.Is(err, ErrNotFound) works on any API failure.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrInvalidArgument
	case 401:
		return ErrAuthentication
	case 403:
		return ErrPermissionDenied
	case 404:
		return ErrNotFound
	case 409:
		return ErrAlreadyExists
	default:
		return nil
	}
}

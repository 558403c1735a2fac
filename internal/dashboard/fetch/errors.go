package fetch

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced a response: refused
// connection, DNS failure, an unusable URL, a body cut off mid-read.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ApplicationError means the backend answered but signalled failure, either
// with a non-2xx status or an error field in the body.
type ApplicationError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsNetworkError reports whether err is, or wraps, a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by a ServiceError carrying a 404.
var ErrNotFound = errors.New("not found")

// NetworkError is a failure before any response arrived: connection refused,
// DNS, timeout.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success response from the API service.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, msg, e.StatusCode)
}

// Is reports a 404 as ErrNotFound.
func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

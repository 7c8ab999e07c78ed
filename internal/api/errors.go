package api

import "fmt"

// Error taxonomy for remote calls. Workflows convert these to user-visible
// strings; nothing above the workflow layer should need to inspect status codes.

// NotFoundError marks an HTTP 404. For collection listings this is a
// recoverable empty state, not a failure.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ValidationError carries a client-correctable rejection (400/422).
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return "invalid request"
	}
	return e.Message
}

// ServerError is any other non-2xx response. Message is the server-supplied
// message when one was present, else empty.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.StatusCode)
}

// TransportError means the request never produced a response.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e TransportError) Unwrap() error { return e.Err }

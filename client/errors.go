package client

import "fmt"

// TransportError means the request could not be sent or no response was
// received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SchemaMismatchError means a response was received but its body does not
// conform to the schema declared for that status code. It indicates contract
// drift between client and server and is surfaced distinctly from business
// errors so it can be alerted on separately.
type SchemaMismatchError struct {
	Op     string
	Status int
	Err    error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: response for status %d does not match the declared schema: %v", e.Op, e.Status, e.Err)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }

// NotFoundError is a 404 on a mutation targeting a specific resource: the
// input was well formed but the target reference was invalid.
type NotFoundError struct {
	Op   string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: target %s not found", e.Op, e.Path)
}

// UnauthenticatedError is a hard 401 on an operation that does not tolerate
// anonymous callers.
type UnauthenticatedError struct {
	Op string
}

func (e *UnauthenticatedError) Error() string {
	return e.Op + ": not authenticated"
}

// ValidationError is a 4xx carrying a structured server message, with
// field-level detail when the server supplied it.
type ValidationError struct {
	Op      string
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// APIError is any other non-2xx response.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
}

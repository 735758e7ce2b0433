package n8n

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that the requested resource does not exist on the
// server. Match it with errors.Is.
var ErrNotFound = errors.New("resource not found")

// ConnectionError reports a failure to reach the n8n instance at all, such
// as a refused connection, DNS failure or timeout. It wraps the underlying
// transport error, so errors.Is(err, context.Canceled) works for aborted
// requests.
type ConnectionError struct {
	// URL that was being requested
	URL string

	// Err is the underlying transport error
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError reports a non-success HTTP status returned by the server.
type APIError struct {
	// StatusCode of the response
	StatusCode int

	// Message extracted from the server's error body, if any
	Message string

	// Raw is the unparsed response body
	Raw []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("n8n API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("n8n API error (status %d)", e.StatusCode)
}

// Is matches a 404 response against ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a response, pulling the message out of
// the server's JSON error body when it has one.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Raw:        body,
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
	}

	return apiErr
}

// ValidationError reports a resource that does not conform to its declared
// shape. It covers both server responses that fail to decode or validate and
// request payloads rejected before they are sent.
type ValidationError struct {
	// Resource is the kind of resource being checked, e.g. "workflow"
	Resource string

	// Err describes the offending field(s)
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying field error(s)
func (e *ValidationError) Unwrap() error {
	return e.Err
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is wrapped by the TransportError returned for a 401.
var ErrUnauthorized = errors.New("unauthorized")

// TransportError covers unreachable hosts, timeouts and non-2xx statuses.
// StatusCode is zero when no response was received.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the request may succeed.
func (e *TransportError) Retryable() bool {
	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, ErrUnauthorized) {
		return false
	}
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func newStatusError(method, path string, raw *rawResponse, wrapped error) *TransportError {
	return &TransportError{
		Method:     method,
		Path:       path,
		StatusCode: raw.status,
		Message:    bodyMessage(raw.body),
		Body:       raw.body,
		Err:        wrapped,
	}
}

// bodyMessage pulls a human readable message out of an error body.
func bodyMessage(b []byte) string {
	var v struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if len(b) == 0 || json.Unmarshal(b, &v) != nil {
		return ""
	}
	if v.Message != "" {
		return v.Message
	}
	var s string
	if json.Unmarshal(v.Detail, &s) == nil {
		return s
	}
	return ""
}

// Package envelope implements the request and response wrappers shared by
// every mutating call against the CPMS API.
package envelope

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is ISO-8601 with millisecond precision in UTC.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Request[T any] struct {
	ID        string `json:"id"`
	Data      T      `json:"req_data"`
	Timestamp string `json:"timestamp"`
}

// NewRequest wraps data with a fresh v4 id and the current time.
func NewRequest[T any](data T) Request[T] {
	return newRequestAt(uuid.NewString(), data, time.Now())
}

// NewRequestWithID wraps data under a caller chosen request id.
func NewRequestWithID[T any](id string, data T) Request[T] {
	return newRequestAt(id, data, time.Now())
}

func newRequestAt[T any](id string, data T, now time.Time) Request[T] {
	return Request[T]{
		ID:        id,
		Data:      data,
		Timestamp: now.UTC().Format(TimeLayout),
	}
}

type Response[U any] struct {
	ID           string          `json:"id"`
	Status       bool            `json:"status"`
	Message      string          `json:"message"`
	Data         *U              `json:"res_data"`
	Timestamp    string          `json:"timestamp"`
	ErrorCode    string          `json:"error_code,omitempty"`
	ErrorDetails json.RawMessage `json:"error_details,omitempty"`
}

// OK reports whether the response carries a payload.
func (r *Response[U]) OK() bool {
	return r != nil && r.Status && r.Data != nil
}

// Extract returns the payload of a successful response or an *APIError.
func Extract[U any](r *Response[U]) (U, error) {
	var zero U
	if r == nil {
		return zero, &APIError{Message: "empty response"}
	}
	if !r.OK() {
		return zero, &APIError{Message: r.Message, Code: r.ErrorCode, Details: r.ErrorDetails, RequestID: r.ID}
	}
	return *r.Data, nil
}

// APIError is an application-level failure reported inside a well-formed envelope.
type APIError struct {
	Message   string
	Code      string
	Details   json.RawMessage
	RequestID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %s: %s", e.Code, msg)
	}
	return "api error: " + msg
}

// Connections is the payload of the active connections endpoint.
type Connections struct {
	ConnectedChargers []string `json:"connected_chargers"`
	ConnectionCount   int      `json:"connection_count"`
}

// ConnectionsResponse does not follow the envelope: it has no id or timestamp.
type ConnectionsResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Connections `json:"res_data"`
}

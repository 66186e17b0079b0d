package apiclient

import (
	"context"
	"net/http"

	"cpmsdash/internal/envelope"
)

// Get fetches path and decodes the response envelope.
func Get[U any](ctx context.Context, c *Client, path string) (*envelope.Response[U], error) {
	var resp envelope.Response[U]
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func Post[T, U any](ctx context.Context, c *Client, path string, data T) (*envelope.Response[U], error) {
	return Send[T, U](ctx, c, http.MethodPost, path, data)
}

func Put[T, U any](ctx context.Context, c *Client, path string, data T) (*envelope.Response[U], error) {
	return Send[T, U](ctx, c, http.MethodPut, path, data)
}

func Delete[T, U any](ctx context.Context, c *Client, path string, data T) (*envelope.Response[U], error) {
	return Send[T, U](ctx, c, http.MethodDelete, path, data)
}

// Send wraps data in a request envelope and decodes the response envelope.
func Send[T, U any](ctx context.Context, c *Client, method, path string, data T) (*envelope.Response[U], error) {
	return send[T, U](ctx, c, method, path, envelope.NewRequest(data))
}

// SendWithID is Send with the envelope id chosen by the caller, so the
// request can be matched against local records.
func SendWithID[T, U any](ctx context.Context, c *Client, method, path, id string, data T) (*envelope.Response[U], error) {
	return send[T, U](ctx, c, method, path, envelope.NewRequestWithID(id, data))
}

func send[T, U any](ctx context.Context, c *Client, method, path string, req envelope.Request[T]) (*envelope.Response[U], error) {
	var resp envelope.Response[U]
	if err := c.Do(ctx, method, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRaw fetches an endpoint that does not use the envelope.
func GetRaw[U any](ctx context.Context, c *Client, path string) (U, error) {
	var out U
	err := c.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

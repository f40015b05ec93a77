// Package backend wraps outbound calls to the remote multi-tenant backend
// service. All failures surface as *Error; a zero Status means the service
// was unreachable, which callers treat differently from a remote 4xx/5xx.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adminbff/internal/metrics"
)

// Error is the typed failure contract of the backend client. Status 0 means
// the request never produced an HTTP response (connection refused, timeout,
// DNS failure).
type Error struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body,omitempty"`
}

func (e *Error) Error() string {
	if e.Unreachable() {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unreachable reports whether the failure was transport-level rather than a
// response from the remote service.
func (e *Error) Unreachable() bool {
	return e.Status == 0
}

// Client issues JSON requests against the backend service base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeaders sets default request headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		headers: map[string]string{
			"User-Agent": "adminbff/1.0",
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	err := c.doOnce(ctx, method, path, token, body, out)
	switch {
	case err == nil:
		metrics.BackendRequestsTotal.WithLabelValues("ok").Inc()
	default:
		var be *Error
		if errors.As(err, &be) && be.Unreachable() {
			metrics.BackendRequestsTotal.WithLabelValues("unreachable").Inc()
		} else {
			metrics.BackendRequestsTotal.WithLabelValues("error").Inc()
		}
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(json.RawMessage); ok {
			reader = bytes.NewReader(raw)
		} else {
			data, err := json.Marshal(body)
			if err != nil {
				return &Error{Status: 0, Message: "encode request body"}
			}
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Status: 0, Message: "build request"}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Credentials never appear in the error: transport errors from
		// net/http echo the URL, not headers, but the message is reduced
		// to a fixed string regardless.
		return &Error{Status: 0, Message: "request failed"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: 0, Message: "read response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if raw, ok := out.(*json.RawMessage); ok {
			*raw = append((*raw)[:0], data...)
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: "decode response"}
		}
	}

	return nil
}

// newResponseError extracts a message from a structured backend error body,
// falling back to the HTTP status text.
func newResponseError(status int, body []byte) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	message := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			message = payload.Error
		case payload.Message != "":
			message = payload.Message
		}
	}

	return &Error{
		Status:  status,
		Message: message,
		Body:    json.RawMessage(body),
	}
}

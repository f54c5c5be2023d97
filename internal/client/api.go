// Package client is the Go client for the PerfPulse API. It wraps the
// HTTP plumbing (base URL resolution, JSON codec, error normalization)
// and maintains the authenticated session state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/perfpulse/perfpulse-go/internal/config"
)

// APIError is returned when the server answers with a non-2xx status.
// Message carries the server's human-readable message when one could be
// extracted from the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the PerfPulse backend, either directly or through the
// gateway depending on the configured environment.
type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the environment-derived base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeader sets a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a Client for the given environment. The backend base URL
// is resolved from the environment's endpoint table; unknown
// environments fall back to local endpoints.
func New(env config.Environment, opts ...Option) *Client {
	endpoints := config.EndpointsFor(env)
	baseURL := endpoints.BackendURL
	if endpoints.UseGateway {
		baseURL = endpoints.GatewayURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Request performs a single JSON request against the API. endpoint is a
// path like "/api/auth/login". When body is non-nil it is encoded as
// JSON; when out is non-nil the response body is decoded into it. A
// non-2xx response yields an *APIError and out is left untouched.
// Requests are not retried.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	return c.RequestWithHeaders(ctx, method, endpoint, body, out, nil)
}

// RequestWithHeaders is Request with extra per-call headers layered over
// the client's defaults.
func (c *Client) RequestWithHeaders(ctx context.Context, method, endpoint string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.StatusCode),
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Get is shorthand for a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out)
}

// Post is shorthand for a POST request.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out)
}

// errorMessage extracts a message from an error response body, falling
// back to a generic one with the status code.
func errorMessage(data []byte, status int) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fmt.Sprintf("服务器错误: %d", status)
}

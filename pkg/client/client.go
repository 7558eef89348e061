// Package client is a Go SDK for the devconnect API. It mirrors the
// server's wire shapes and layers a small event driven state container
// on top, so callers can consume the API the same way the reference
// frontend does: dispatch an action, observe the store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const DefaultTokenHeader = "x-auth-token"

// ErrorItem is a single server side complaint, either about the request
// as a whole or about one named field.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Field string `json:"field,omitempty"`
}

// APIError is a non-2xx response decoded into the server's two error
// shapes: a flat {msg} or a validation {errors:[...]} list.
type APIError struct {
	Status int
	Msg    string
	Errors []ErrorItem
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Msg)
	}
	msgs := make([]string, len(e.Errors))
	for i, item := range e.Errors {
		msgs[i] = item.Msg
	}
	return fmt.Sprintf("api: %d: %s", e.Status, strings.Join(msgs, "; "))
}

// Items flattens both shapes into a uniform list for alert fan-out.
func (e *APIError) Items() []ErrorItem {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	if e.Msg != "" {
		return []ErrorItem{{Msg: e.Msg}}
	}
	return nil
}

// Client is the HTTP transport. The token is mutable because login and
// logout swap it at runtime; access is guarded for concurrent dispatch.
type Client struct {
	baseURL     string
	tokenHeader string
	httpClient  *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenHeader(header string) Option {
	return func(c *Client) { c.tokenHeader = header }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokenHeader: DefaultTokenHeader,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(c.tokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Msg: "unreadable error response"}
	}

	var shape struct {
		Msg    string      `json:"msg"`
		Errors []ErrorItem `json:"errors"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return &APIError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(data))}
	}
	return &APIError{Status: resp.StatusCode, Msg: shape.Msg, Errors: shape.Errors}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

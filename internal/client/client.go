// Package client is the HTTP adapter used by the circle page to talk to the
// circles API. Every call returns a normalized Result; typed helpers turn a
// non-ok result into a *ResponseError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client performs authenticated JSON requests against the circles API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wire format of every API response
type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Msg    json.RawMessage `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// Result is a normalized API response
type Result struct {
	OK         bool
	StatusCode int
	Code       string
	Data       json.RawMessage
	Msg        json.RawMessage
}

// Message returns msg as text: a JSON string is unquoted, structured
// values are returned in their compact serialized form.
func (r *Result) Message() string {
	raw := bytes.TrimSpace(r.Msg)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Err returns nil for an ok result and a *ResponseError otherwise
func (r *Result) Err() error {
	if r.OK {
		return nil
	}

	msg := r.Message()
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}
	return &ResponseError{
		StatusCode: r.StatusCode,
		Code:       r.Code,
		Message:    msg,
	}
}

// Decode unmarshals the data payload into v
func (r *Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// ResponseError is a non-ok API response
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	return e.Message
}

// Do sends a JSON request and normalizes the response. Transport failures
// are returned as errors; API-level failures are reported via Result.OK.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Result, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	res := &Result{StatusCode: resp.StatusCode}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Not an API envelope (proxy error page etc.)
		return res, nil
	}

	res.OK = resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Status == "ok"
	res.Code = env.Code
	res.Msg = env.Msg
	res.Data = env.Data
	return res, nil
}

// call issues a request and returns the result, converting a non-ok
// result into an error.
func (c *Client) call(ctx context.Context, method, path string, body any) (*Result, error) {
	res, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeInto[T any](res *Result) (T, error) {
	var v T
	err := res.Decode(&v)
	return v, err
}

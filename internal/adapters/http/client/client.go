// Package client calls a running allocation server over HTTP.
package client

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

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
)

const defaultTimeout = 30 * time.Second

// ErrStatus is returned for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// StatusError carries the server's error body.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%v %d: %s", ErrStatus, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%v %d (%s): %s", ErrStatus, e.StatusCode, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Client wraps http.Client with the server's base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a client for the server at baseURL, e.g. http://localhost:9080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Allocate posts req to /allocations.
func (c *Client) Allocate(ctx context.Context, req types.AllocationRequest) (types.AllocationResponse, error) {
	var resp types.AllocationResponse
	err := c.do(ctx, http.MethodPost, "/allocations", req, &resp)
	return resp, err
}

// DefaultTemplate fetches /templates/default.
func (c *Client) DefaultTemplate(ctx context.Context) (model.MixerConfig, error) {
	var cfg model.MixerConfig
	err := c.do(ctx, http.MethodGet, "/templates/default", nil, &cfg)
	return cfg, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var eb struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			se.Code, se.Message = eb.Code, eb.Message
		}
		return se
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

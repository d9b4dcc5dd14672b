// Package client talks to a remote /labels endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swipetree/internal/annotation/models"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/platform/httputil"
	"swipetree/pkg/platform/sentinel"
)

const defaultTimeout = 5 * time.Second

// Client reads and writes labels over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/labels",
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the label for id. An absent label comes back as an empty
// label carrying id.
func (c *Client) Get(ctx context.Context, id string) (models.Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?id="+url.QueryEscape(id), nil)
	if err != nil {
		return models.Label{}, fmt.Errorf("build request: %w", err)
	}
	var l models.Label
	if err := c.do(req, &l); err != nil {
		return models.Label{}, err
	}
	if l.ID == "" {
		l.ID = id
	}
	return l, nil
}

// Set writes the label with PUT.
func (c *Client) Set(ctx context.Context, l models.Label) error {
	body, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode label: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", req.Method, c.endpoint, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: status %d: %w", req.Method, c.endpoint, resp.StatusCode, sentinel.ErrUnavailable)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var e httputil.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.ErrorDescription
		if msg == "" {
			msg = e.Error
		}
		return dErrors.New(dErrors.CodeBadRequest, msg)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

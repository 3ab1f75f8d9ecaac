// Package apiclient talks to the persistence service over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// Client implements store.Remote.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

var _ store.Remote = (*Client)(nil)

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Health succeeds only on a 2xx answer from /health.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode/100 != 2 {
		return statusError(http.MethodGet, "/health", resp)
	}
	return nil
}

// Fetch decodes the JSON body at path into out. 404 maps to domain.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, domain.ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		return statusError(http.MethodGet, path, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// Send performs one remote write. Any non-2xx answer is an error.
func (c *Client) Send(ctx context.Context, e store.Effect) error {
	var body io.Reader
	if e.Body != nil {
		raw, err := json.Marshal(e.Body)
		if err != nil {
			return fmt.Errorf("%s %s: encode: %w", e.Method, e.Path, err)
		}
		body = bytes.NewReader(raw)
	}
	resp, err := c.do(ctx, e.Method, e.Path, body)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode/100 != 2 {
		return statusError(e.Method, e.Path, resp)
	}
	c.logger.Printf("apiclient: %s %s status=%d", e.Method, e.Path, resp.StatusCode)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// statusError includes the service's {"error": ...} message when present.
func statusError(method, path string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

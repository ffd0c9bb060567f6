package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"stockpilot/infrastructure/metrics"
)

// Client issues JSON requests against the catering backend. It carries
// no retry, no timeout and no auth; failures propagate to the caller.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// APIError is returned for any non-2xx backend response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: HTTP %d: %s", e.StatusCode, body)
}

// New creates a client for the given base URL. Trailing slashes are
// stripped so paths can always start with "/".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

// Get performs a GET request and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// PostRaw performs a POST and hands back the raw response so callers can
// inspect headers and stream the body (report downloads). The caller
// owns resp.Body. Non-2xx responses are consumed and returned as
// *APIError, same as the JSON methods.
func (c *Client) PostRaw(ctx context.Context, path string, body any) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	metrics.BackendRequests.WithLabelValues(http.MethodPost).Inc()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.BackendErrors.Inc()
		return nil, fmt.Errorf("backend request %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		metrics.BackendErrors.Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	metrics.BackendRequests.WithLabelValues(method).Inc()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.BackendErrors.Inc()
		return fmt.Errorf("backend request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendErrors.Inc()
		return fmt.Errorf("backend read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendErrors.Inc()
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend encode %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

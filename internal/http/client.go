package http

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Doer sends a single HTTP request. *Client and *http.Client both satisfy it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s from %s", e.Status, e.URL)
}

// StatusCode returns the HTTP status of the response.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Client sends dataset requests with an overall timeout. A zero timeout means
// no client-side limit.
type Client struct {
	client  *http.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// readBody drains resp and returns its body for a 2xx status. Any other
// status becomes a *StatusError for url.
func readBody(resp *http.Response, url string) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

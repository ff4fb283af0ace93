package transformx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// Client is the HTTP gateway for one accelerator backend. Each client is
// bound to a single project base URL; session managers create one per
// project. After creation, the client is immutable and safe for concurrent
// use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Custom headers to include in all requests
	headers map[string]string

	timeout     time.Duration
	retryConfig *RetryConfig
}

// RetryConfig configures retry behavior for idempotent requests
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// New creates a new Client for the given backend base URL
func New(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		headers: make(map[string]string),
		timeout: 30 * time.Second,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryConfig: &RetryConfig{
			MaxRetries: 2,
			RetryDelay: time.Second,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig sets the retry configuration for idempotent requests
func WithRetryConfig(config *RetryConfig) ClientOption {
	return func(c *Client) {
		c.retryConfig = config
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds a custom header that will be included in all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple custom headers that will be included in all requests
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest creates a new HTTP request with default and custom headers.
// Callers sending something other than JSON (multipart uploads) override
// Content-Type on the returned request.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// Do executes an HTTP request exactly once. Mutating calls (evaluation
// submission, document ingestion, QA) go through here: they may trigger
// backend computation and must never be retried silently.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoIdempotent executes a read-only request with retry on transport errors
// and 5xx responses. Only used for GETs (health probes, result retrieval).
func (c *Client) DoIdempotent(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		resp, err = c.httpClient.Do(req)

		// Success or non-retryable error
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if attempt < c.retryConfig.MaxRetries {
			if resp != nil {
				resp.Body.Close()
			}
			time.Sleep(c.retryConfig.RetryDelay * time.Duration(attempt+1))
		}
	}

	return resp, err
}

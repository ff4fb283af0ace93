package transformx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	client := New("https://rag-evaluator-api.onrender.com/")

	if client.baseURL != "https://rag-evaluator-api.onrender.com" {
		t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
	}

	if client.timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", client.timeout)
	}

	if client.httpClient == nil {
		t.Error("expected httpClient to be initialized")
	}

	if client.headers == nil {
		t.Error("expected headers map to be initialized")
	}

	if client.retryConfig == nil {
		t.Error("expected retryConfig to be initialized")
	}
}

func TestClientOptions(t *testing.T) {
	customTimeout := 60 * time.Second

	client := New("https://api.example.com",
		WithTimeout(customTimeout),
		WithHeader("X-Custom-Header", "value"),
	)

	if client.timeout != customTimeout {
		t.Errorf("expected timeout %v, got %v", customTimeout, client.timeout)
	}

	if client.httpClient.Timeout != customTimeout {
		t.Errorf("expected http client timeout %v, got %v", customTimeout, client.httpClient.Timeout)
	}

	if val, ok := client.headers["X-Custom-Header"]; !ok || val != "value" {
		t.Errorf("expected header X-Custom-Header with value 'value', got %v, %v", val, ok)
	}
}

func TestWithHeaders(t *testing.T) {
	headers := map[string]string{
		"X-Header-1": "value1",
		"X-Header-2": "value2",
	}

	client := New("https://api.example.com", WithHeaders(headers))

	for k, v := range headers {
		if val, ok := client.headers[k]; !ok || val != v {
			t.Errorf("expected header %s with value %s, got %v, %v", k, v, val, ok)
		}
	}
}

func TestNewRequest(t *testing.T) {
	client := New("https://api.example.com",
		WithHeader("X-Custom-Header", "custom-value"),
	)

	ctx := context.Background()
	req, err := client.NewRequest(ctx, "GET", "/health", nil)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if req.Method != "GET" {
		t.Errorf("expected method GET, got %s", req.Method)
	}

	expectedURL := "https://api.example.com/health"
	if req.URL.String() != expectedURL {
		t.Errorf("expected URL %s, got %s", expectedURL, req.URL.String())
	}

	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", req.Header.Get("Content-Type"))
	}

	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("expected Accept application/json, got %s", req.Header.Get("Accept"))
	}

	if req.Header.Get("X-Custom-Header") != "custom-value" {
		t.Errorf("expected X-Custom-Header custom-value, got %s", req.Header.Get("X-Custom-Header"))
	}
}

func TestDo_NeverRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL,
		WithRetryConfig(&RetryConfig{MaxRetries: 3, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "POST", "/evaluate", nil)
	resp, err := client.Do(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}

	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt for a mutating call, got %d", attempts)
	}
}

func TestDoIdempotent_RetryOn5xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := New(server.URL,
		WithRetryConfig(&RetryConfig{MaxRetries: 3, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/health", nil)
	resp, err := client.DoIdempotent(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 after retries, got %d", resp.StatusCode)
	}

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoIdempotent_NoRetryOn4xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL,
		WithRetryConfig(&RetryConfig{MaxRetries: 3, RetryDelay: 1 * time.Millisecond}),
	)

	req, _ := client.NewRequest(context.Background(), "GET", "/results", nil)
	resp, err := client.DoIdempotent(req)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}

	if attempts != 1 {
		t.Errorf("expected 1 attempt (no retry on 4xx), got %d", attempts)
	}
}

func TestWithRetryConfig(t *testing.T) {
	customRetry := &RetryConfig{
		MaxRetries: 5,
		RetryDelay: 2 * time.Second,
	}

	client := New("https://api.example.com", WithRetryConfig(customRetry))

	if client.retryConfig.MaxRetries != 5 {
		t.Errorf("expected MaxRetries 5, got %d", client.retryConfig.MaxRetries)
	}

	if client.retryConfig.RetryDelay != 2*time.Second {
		t.Errorf("expected RetryDelay 2s, got %v", client.retryConfig.RetryDelay)
	}
}

func TestWithHTTPClient(t *testing.T) {
	customClient := &http.Client{
		Timeout: 5 * time.Second,
	}

	client := New("https://api.example.com", WithHTTPClient(customClient))

	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be used")
	}
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kaifri/BitunixTradezellaSync/internal/auth"
)

func testCreds(t *testing.T) *auth.Credentials {
	t.Helper()
	creds, err := auth.NewCredentials("test-api-key", "test-secret-key")
	if err != nil {
		t.Fatalf("NewCredentials failed: %v", err)
	}
	return creds
}

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://fapi.example.com", testCreds(t))

		if c.baseURL != "https://fapi.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://fapi.example.com")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.pageLimit != DefaultPageLimit {
			t.Errorf("pageLimit = %d, want %d", c.pageLimit, DefaultPageLimit)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://fapi.example.com", testCreds(t), WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient("https://fapi.example.com", testCreds(t), WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with page limit option", func(t *testing.T) {
		c := NewClient("https://fapi.example.com", testCreds(t), WithPageLimit(25))
		if c.pageLimit != 25 {
			t.Errorf("pageLimit = %d, want 25", c.pageLimit)
		}
	})

	t.Run("page limit option ignores non-positive values", func(t *testing.T) {
		c := NewClient("https://fapi.example.com", testCreds(t), WithPageLimit(0))
		if c.pageLimit != DefaultPageLimit {
			t.Errorf("pageLimit = %d, want default %d", c.pageLimit, DefaultPageLimit)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://fapi.example.com", testCreds(t), WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://fapi.example.com", testCreds(t), WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})
}

func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{
			StatusCode: 403,
			Message:    "Forbidden",
			Body:       []byte(`{"code":10003,"msg":"signature error"}`),
		}
		expected := "bitunix api error 403: Forbidden"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{401, false},
			{403, false},
			{404, false},
			{499, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

func TestDoRequest_SignedHeaders(t *testing.T) {
	creds := testCreds(t)

	var gotNonce string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "test-api-key" {
			t.Errorf("api-key header = %q, want %q", r.Header.Get("api-key"), "test-api-key")
		}
		if r.Header.Get("timestamp") == "" {
			t.Error("timestamp header is empty")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", r.Header.Get("Content-Type"))
		}

		gotNonce = r.Header.Get("nonce")
		if len(gotNonce) != 32 {
			t.Errorf("nonce length = %d, want 32", len(gotNonce))
		}

		// Recompute the signature server-side from the received request.
		query := make(map[string]string)
		for k, vs := range r.URL.Query() {
			query[k] = vs[0]
		}
		want, err := creds.Sign(r.Header.Get("nonce"), r.Header.Get("timestamp"), query, nil)
		if err != nil {
			t.Errorf("server-side Sign failed: %v", err)
		} else if got := r.Header.Get("sign"); got != want {
			t.Errorf("sign header = %q, want %q", got, want)
		}

		w.Write([]byte(`{"code":0,"msg":"Success","data":{"tradeList":[]}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, creds)
	if _, err := c.GetHistoryTrades(context.Background(), HistoryTradesOptions{Limit: 100}); err != nil {
		t.Fatalf("GetHistoryTrades failed: %v", err)
	}

	firstNonce := gotNonce
	if _, err := c.GetHistoryTrades(context.Background(), HistoryTradesOptions{Limit: 100}); err != nil {
		t.Fatalf("GetHistoryTrades failed: %v", err)
	}
	if gotNonce == firstNonce {
		t.Error("nonce reused across requests")
	}
}

func TestDoWithRetry(t *testing.T) {
	t.Run("retries on 5xx then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"code":0,"msg":"Success","data":{"tradeList":[]}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, testCreds(t), WithRetries(3, time.Millisecond))
		if _, err := c.GetHistoryTrades(context.Background(), HistoryTradesOptions{Limit: 100}); err != nil {
			t.Fatalf("GetHistoryTrades failed after retries: %v", err)
		}
		if calls.Load() != 3 {
			t.Errorf("server calls = %d, want 3", calls.Load())
		}
	})

	t.Run("does not retry on 4xx", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(server.URL, testCreds(t), WithRetries(3, time.Millisecond))
		_, err := c.GetHistoryTrades(context.Background(), HistoryTradesOptions{Limit: 100})
		if err == nil {
			t.Fatal("expected error for 400 response")
		}
		if calls.Load() != 1 {
			t.Errorf("server calls = %d, want 1 (no retries)", calls.Load())
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, testCreds(t), WithRetries(2, time.Millisecond))
		_, err := c.GetHistoryTrades(context.Background(), HistoryTradesOptions{Limit: 100})
		if err == nil {
			t.Fatal("expected error after exhausting retries")
		}
		if calls.Load() != 3 {
			t.Errorf("server calls = %d, want 3 (initial + 2 retries)", calls.Load())
		}
	})

	t.Run("respects context cancellation during backoff", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewClient(server.URL, testCreds(t), WithRetries(3, time.Minute))
		_, err := c.GetHistoryTrades(ctx, HistoryTradesOptions{Limit: 100})
		if err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

package bopi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

// testClient builds a client pointed at a mock box server
func testClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}

	client, err := NewClient(u.Hostname(), append([]Option{WithPort(port)}, opts...)...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("example.com")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", client.Port, DefaultPort)
	}
	if client.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", client.RequestTimeout, DefaultRequestTimeout)
	}
	if client.BaseURL() != "http://example.com:80" {
		t.Errorf("BaseURL() = %s, want http://example.com:80", client.BaseURL())
	}
}

func TestNewClient_EmptyHost(t *testing.T) {
	for _, host := range []string{"", "   "} {
		_, err := NewClient(host)
		if err == nil {
			t.Fatalf("NewClient(%q) should fail", host)
		}
		if !IsConfigError(err) {
			t.Errorf("NewClient(%q) error should be config error, got %v", host, err)
		}
		if !strings.Contains(err.Error(), "host must be a non-empty string") {
			t.Errorf("NewClient(%q) error = %v, want host message", host, err)
		}
	}
}

func TestNewClient_InvalidPort(t *testing.T) {
	for _, port := range []int{-1, 0, 65536} {
		_, err := NewClient("example.com", WithPort(port))
		if err == nil {
			t.Fatalf("NewClient(port=%d) should fail", port)
		}
		if !IsConfigError(err) {
			t.Errorf("NewClient(port=%d) error should be config error, got %v", port, err)
		}
		if !strings.Contains(err.Error(), "port must be between 1 and 65535") {
			t.Errorf("NewClient(port=%d) error = %v, want port message", port, err)
		}
	}
}

func TestNewClient_InvalidRequestTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -1 * time.Second} {
		_, err := NewClient("example.com", WithRequestTimeout(timeout))
		if err == nil {
			t.Fatalf("NewClient(timeout=%v) should fail", timeout)
		}
		if !IsConfigError(err) {
			t.Errorf("NewClient(timeout=%v) error should be config error, got %v", timeout, err)
		}
		if !strings.Contains(err.Error(), "request_timeout must be positive") {
			t.Errorf("NewClient(timeout=%v) error = %v, want timeout message", timeout, err)
		}
	}
}

func TestRequest_JSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "data": "test"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	payload, err := client.Get(context.Background(), "/")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if payload["status"] != "ok" {
		t.Errorf(`payload["status"] = %v, want "ok"`, payload["status"])
	}
	if payload["data"] != "test" {
		t.Errorf(`payload["data"] = %v, want "test"`, payload["data"])
	}
}

func TestRequest_TextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	payload, err := client.Get(context.Background(), "/")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if len(payload) != 1 || payload["message"] != "OK" {
		t.Errorf(`payload = %v, want {"message": "OK"}`, payload)
	}
}

func TestRequest_PostMethod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	payload, err := client.Request(context.Background(), http.MethodPost, "/", nil, nil)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if payload["message"] != "OK" {
		t.Errorf(`payload["message"] = %v, want "OK"`, payload["message"])
	}
}

func TestRequest_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("unit"); got != "celsius" {
			t.Errorf("query unit = %s, want celsius", got)
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	query := url.Values{}
	query.Set("unit", "celsius")
	if _, err := client.Request(context.Background(), http.MethodGet, "/", query, nil); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
}

func TestRequest_ErrorStatus404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found!", http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	_, err := client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail on 404")
	}
	if !IsAPIError(err) {
		t.Errorf("error should be API error, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, should mention status 404", err)
	}
}

func TestRequest_ErrorStatus500WithJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"nok", "error": "Internal server error"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	_, err := client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail on 500")
	}
	if !strings.Contains(err.Error(), "API returned error status 500") {
		t.Errorf("error = %v, should mention status 500", err)
	}
	if !strings.Contains(err.Error(), "Internal server error") {
		t.Errorf("error = %v, should include server-supplied error text", err)
	}
}

func TestRequest_ErrorStatusWithMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"nok`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	// The status must still be reported even though the JSON body is unusable
	_, err := client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail on 500")
	}
	if !strings.Contains(err.Error(), "API returned error status 500") {
		t.Errorf("error = %v, should mention status 500", err)
	}
}

func TestRequest_SuccessStatusWithMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"nok`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer client.Close()

	_, err := client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail on malformed JSON")
	}
	if !IsAPIError(err) {
		t.Errorf("error should be API error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Failed to parse JSON response") {
		t.Errorf("error = %v, want parse failure message", err)
	}
}

func TestRequest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("Slow!"))
	}))
	defer server.Close()

	client := testClient(t, server, WithRequestTimeout(50*time.Millisecond))
	defer client.Close()

	_, err := client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail on timeout")
	}
	if !IsConnectionError(err) {
		t.Errorf("error should be connection error, got %v", err)
	}
}

func TestRequest_ConnectionFailure(t *testing.T) {
	// Grab a port with no listener behind it
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	u, _ := url.Parse(serverURL)
	port, _ := strconv.Atoi(u.Port())

	client, err := NewClient(u.Hostname(), WithPort(port), WithRequestTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	_, err = client.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("Get() should fail when nothing is listening")
	}
	if !IsConnectionError(err) {
		t.Errorf("error should be connection error, got %v", err)
	}
}

func TestClose_OwnedSession(t *testing.T) {
	client, err := NewClient("example.com")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	// Force lazy session creation, then close
	if client.session() == nil {
		t.Fatal("session() returned nil")
	}
	if !client.ownsClient {
		t.Error("lazily created session should be owned")
	}

	client.Close()
	if client.httpClient != nil {
		t.Error("Close() should release an owned session")
	}
}

func TestClose_BorrowedSession(t *testing.T) {
	external := &http.Client{}
	client, err := NewClient("example.com", WithHTTPClient(external))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.session() != external {
		t.Error("session() should return the supplied client")
	}
	if client.ownsClient {
		t.Error("supplied session should be borrowed, not owned")
	}

	client.Close()
	if client.httpClient != external {
		t.Error("Close() must leave a borrowed session untouched")
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/hal+json", true},
		{"text/plain", false},
		{"text/html; charset=utf-8", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := isJSONContentType(tt.contentType); got != tt.want {
				t.Errorf("isJSONContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

package bopi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultPort is the HTTP port the BoPi box listens on
	DefaultPort = 80

	// DefaultRequestTimeout is the default timeout for a whole HTTP exchange
	DefaultRequestTimeout = 8 * time.Second
)

// Client is an HTTP client for the local API of a BoPi sensor box.
//
// The zero value is not usable; construct with NewClient, which validates
// the configuration eagerly. A Client is safe for concurrent use: each
// request is an independent exchange whose timeout cancels only itself.
type Client struct {
	// Host is the hostname or IP address of the box (e.g., "192.168.1.26")
	Host string

	// Port is the HTTP port of the box
	Port int

	// RequestTimeout bounds each request end to end (connect + read)
	RequestTimeout time.Duration

	// httpClient is the underlying session. When supplied by the caller it
	// is borrowed and Close leaves it alone; when nil it is created lazily
	// on first use and owned by the Client.
	httpClient *http.Client
	ownsClient bool

	mu sync.Mutex // guards lazy session creation
}

// Option customizes a Client at construction time
type Option func(*Client)

// WithPort sets the HTTP port of the box (default 80)
func WithPort(port int) Option {
	return func(c *Client) {
		c.Port = port
	}
}

// WithRequestTimeout sets the per-request timeout (default 8s)
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.RequestTimeout = timeout
	}
}

// WithHTTPClient supplies an external HTTP session. The Client borrows it:
// Close will not tear it down, the caller keeps managing its lifecycle.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the BoPi box at the given host.
// Configuration is validated here; invalid values never make it to the
// first request.
func NewClient(host string, opts ...Option) (*Client, error) {
	c := &Client{
		Host:           host,
		Port:           DefaultPort,
		RequestTimeout: DefaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if strings.TrimSpace(c.Host) == "" {
		return nil, NewConfigError("host must be a non-empty string")
	}
	if c.Port < 1 || c.Port > 65535 {
		return nil, NewConfigError("port must be between 1 and 65535")
	}
	if c.RequestTimeout <= 0 {
		return nil, NewConfigError("request_timeout must be positive")
	}

	return c, nil
}

// BaseURL returns the HTTP base URL of the box
func (c *Client) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// session returns the HTTP session, creating an owned one on first use
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
		c.ownsClient = true
	}
	return c.httpClient
}

// Get performs a GET request against the given path
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, path, nil, nil)
}

// Request performs a single HTTP exchange against the box and returns the
// decoded payload.
//
// A JSON response body decodes into the returned map. A non-JSON success
// body is wrapped as {"message": "<raw body>"}. Error statuses (>= 400),
// network failures, timeouts and undecodable JSON on a success status all
// return a typed error instead; no partial result is ever returned.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body io.Reader) (map[string]any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.RequestTimeout)
	defer cancel()

	target := c.BaseURL() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewConnectionError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.session().Do(req)
	if err != nil {
		return nil, ClassifyConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyConnectionError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newStatusError(resp.StatusCode, raw)
	}

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, NewAPIError(resp.StatusCode, "Failed to parse JSON response", err)
		}
		return payload, nil
	}

	return map[string]any{"message": string(raw)}, nil
}

// Close releases the HTTP session if the Client owns it. An externally
// supplied session is left open for the caller to manage.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownsClient && c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
		c.ownsClient = false
	}
}

// newStatusError builds the API error for a >= 400 response. When the body
// is JSON carrying an "error" field, the server-supplied text is appended;
// a body that fails to decode still reports the bare status.
func newStatusError(statusCode int, raw []byte) *ClientError {
	message := fmt.Sprintf("API returned error status %d", statusCode)

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err == nil {
		if text, ok := payload["error"].(string); ok && text != "" {
			message = fmt.Sprintf("%s: %s", message, text)
		}
	}

	return NewAPIError(statusCode, message, nil)
}

// isJSONContentType reports whether a Content-Type header claims JSON
func isJSONContentType(contentType string) bool {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	return strings.EqualFold(mediaType, "application/json") ||
		strings.HasSuffix(strings.ToLower(mediaType), "+json")
}
